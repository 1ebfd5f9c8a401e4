// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package keys implements the composite key and list encoding shared by
translation stores and their record streams.

Parts are joined with a single ';'. A literal ';' inside a part is replaced
with the token "__semi" before joining and restored after splitting. This is
plain token substitution, not an escaping grammar: user data that already
contains "__semi" is not preserved across a round trip.
*/
package keys
