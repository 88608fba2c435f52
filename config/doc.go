// Package config holds the two outer configuration surfaces: runtime
// settings read from the environment, and the JSON filter document a search
// is compiled from.
//
// The core packages accept parsed enums and bitmasks only; every string is
// resolved here, so a typo in an item name fails before any worker starts.
package config
