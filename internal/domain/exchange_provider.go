package domain

// CurrencyConverter converts display amounts between currencies.
type CurrencyConverter interface {
	Convert(amount float64, from, to string) (float64, error)
}
