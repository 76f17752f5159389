package usecase

import (
	"strings"

	"github.com/phenrril/fightshop/internal/domain"
)

var promoCodes = map[string]int{
	"SPORT10":   10,
	"FIGHTER20": 20,
	"WUSHU15":   15,
	"НАЧАЛО":    5,
}

// ResolvePromo looks a code up case-insensitively.
func ResolvePromo(code string) (domain.Promo, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	pct, ok := promoCodes[c]
	if !ok || c == "" {
		return domain.Promo{}, domain.ErrPromoNotFound
	}
	return domain.Promo{Code: c, Percent: pct}, nil
}
