package repository

import (
	"fmt"

	"github.com/nikolayk812/stockcheckout/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

func toMoney(amount decimal.Decimal, cur string) (domain.Money, error) {
	parsedCurrency, err := currency.ParseISO(cur)
	if err != nil {
		return domain.Money{}, fmt.Errorf("currency[%s] is not valid: %w", cur, err)
	}

	return domain.Money{Amount: amount, Currency: parsedCurrency}, nil
}

func nilSliceIfEmpty[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return s
}
