package models

type Account struct {
	AccountKey     string `json:"AccountKey"`
	AccountId      string `json:"AccountId"`
	AccountType    string `json:"AccountType"`
	Currency       string `json:"Currency"`
	DisplayName    string `json:"DisplayName,omitempty"`
	Active         bool   `json:"Active"`
	ClientKey      string `json:"ClientKey"`
	IsTrialAccount bool   `json:"IsTrialAccount,omitempty"`
}

type AccountsDTO struct {
	Data []Account `json:"Data"`
}

// AccountList resolves account keys to the account ids used in TradableOn.
type AccountList []Account

func (l AccountList) ResolveAccountID(accountKey string) (string, bool) {
	for _, a := range l {
		if a.AccountKey == accountKey {
			return a.AccountId, true
		}
	}

	return "", false
}
