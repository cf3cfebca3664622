package models

type LotSizeType string

const (
	LotSizeTypeNotUsed  LotSizeType = "NotUsed"
	LotSizeTypeOddLots  LotSizeType = "OddLotsAllowed"
	LotSizeTypeRoundLot LotSizeType = "RoundLotsOnly"
)
