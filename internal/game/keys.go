package game

import "strconv"

// Context keys. Vector and scalar mode derive streams from these exact
// strings; the per-key-length Stage-1 partial cache makes same-length keys
// share the expensive seed fold, so related keys are kept at equal length
// where the generator allows it.

func keyVoucher(ante int) string { return "Voucher" + strconv.Itoa(ante) }
func keyTag(ante int) string     { return "Tag" + strconv.Itoa(ante) }

// keyBoss has no ante suffix: the boss order is one stream advanced
// ante-by-ante across the whole run.
const keyBoss = "Boss"

func keyShopType(ante int) string    { return "Type" + strconv.Itoa(ante) }
func keyShopRarity(ante int) string  { return "Rarity" + strconv.Itoa(ante) }
func keyShopEdition(ante int) string { return "Edition" + strconv.Itoa(ante) }
func keyShopTarot(ante int) string   { return "Tarot" + strconv.Itoa(ante) }
func keyShopPlanet(ante int) string  { return "Planet" + strconv.Itoa(ante) }

func keyShopJoker(rarity string, ante int) string {
	return "Joker_" + rarity + strconv.Itoa(ante)
}

func keyPackKind(ante int) string     { return "PackKind" + strconv.Itoa(ante) }
func keyPackTarot(ante int) string    { return "PackTarot" + strconv.Itoa(ante) }
func keyPackPlanet(ante int) string   { return "PackPlanet" + strconv.Itoa(ante) }
func keyPackSpectral(ante int) string { return "PackSpectral" + strconv.Itoa(ante) }
func keyPackCard(ante int) string     { return "PackCard" + strconv.Itoa(ante) }
func keyPackJoker(ante int) string    { return "PackJoker" + strconv.Itoa(ante) }
func keySoul(ante int) string         { return "Soul" + strconv.Itoa(ante) }
func keySoulJoker(ante int) string    { return "SoulJoker" + strconv.Itoa(ante) }
