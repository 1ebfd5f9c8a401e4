// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package i18n provides a string-keyed translation store for one locale.

A [Store] holds three independent tables:

  - scalar translations, set with [Store.Add]
  - ordered string lists, set with [Store.AddValues]
  - template pattern lists per (field, usage) pair, set with [Store.AddTemplate]

Dictionary helpers such as [AddDictionary] and [LookupDictionary] file each
entry under a composite key built by [keys.ComposeKey] from a prefix and the
entry key.

# Serialized form

[Store.Save] writes a store as an ordered record stream and [Store.Load]
rebuilds a new store from one. Record keys have the form TYPE;payload:

	CULTURE;                      locale identifier
	VALUE;<key>                   scalar value
	LIST;<key>                    encoded list
	TEMPLATE;<usage>;<f1>;<f2>    encoded pattern list shared by f1, f2

Fields that share a usage and an identical pattern list are written as a
single TEMPLATE record. Load returns a [Diff] naming the keys the original
store had that the loaded one lacks, and the reverse.

# Missing translations

Lookups never fail; a miss leaves the caller's value in place. Stores built
with [WithStrictMissingKeys] log each missing dictionary or template key once
per locale.
*/
package i18n
