package models

type AssetType string

const (
	AssetTypeStock           AssetType = "Stock"
	AssetTypeStockOption     AssetType = "StockOption"
	AssetTypeFuturesOption   AssetType = "FuturesOption"
	AssetTypeContractFutures AssetType = "ContractFutures"
	AssetTypeFxSpot          AssetType = "FxSpot"
	AssetTypeEtf             AssetType = "Etf"
)
