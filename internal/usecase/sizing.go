package usecase

import (
	"fmt"
	"math"
	"strconv"

	"github.com/phenrril/fightshop/internal/domain"
)

type Weapon string

const (
	WeaponSword Weapon = "sword"
	WeaponStaff Weapon = "staff"
	WeaponSpear Weapon = "spear"
	WeaponDao   Weapon = "dao"
)

type Experience string

const (
	ExperienceBeginner     Experience = "beginner"
	ExperienceIntermediate Experience = "intermediate"
	ExperienceAdvanced     Experience = "advanced"
)

var weaponNames = map[Weapon]string{
	WeaponSword: "Меч Цзянь / Сабля Дао",
	WeaponStaff: "Шест Гунь",
	WeaponSpear: "Копье Цян",
	WeaponDao:   "Сабля Дао",
}

type SizeRequest struct {
	Weapon     Weapon     `json:"weapon"`
	Height     float64    `json:"height"`
	ArmSpan    float64    `json:"armSpan,omitempty"`
	Experience Experience `json:"experience"`
}

type SizeRecommendation struct {
	WeaponType        string   `json:"weaponType"`
	RecommendedLength string   `json:"recommendedLength"`
	LengthCm          int      `json:"lengthCm"`
	ArmSpan           float64  `json:"armSpan"`
	Explanation       string   `json:"explanation"`
	Alternatives      []string `json:"alternatives"`
}

func cm(v int) string { return strconv.Itoa(v) + "см" }

func roundCm(v float64) int { return int(math.Round(v)) }

// RecommendSize suggests a weapon length for the athlete. Arm span defaults to 1.05 of the
// height and experience only matters for the staff.
func RecommendSize(req SizeRequest) (*SizeRecommendation, error) {
	h := req.Height
	if h <= 0 || math.IsNaN(h) || math.IsInf(h, 0) {
		return nil, domain.ValidationErrors{"height": "Укажите рост"}
	}
	name, ok := weaponNames[req.Weapon]
	if !ok {
		return nil, domain.ValidationErrors{"weapon": "Неизвестный тип оружия"}
	}
	span := req.ArmSpan
	if span <= 0 {
		span = h * 1.05
	}
	hs := strconv.FormatFloat(h, 'f', -1, 64)
	rec := &SizeRecommendation{WeaponType: name, ArmSpan: span}

	switch req.Weapon {
	case WeaponSword:
		l := roundCm(h * 0.65)
		rec.LengthCm = l
		rec.Explanation = fmt.Sprintf("Для вашего роста %sсм оптимальная длина меча %dсм. Это обеспечит правильную технику и баланс.", hs, l)
		rec.Alternatives = []string{cm(l-5) + " (для начинающих)", cm(l+5) + " (для продвинутых)"}
	case WeaponStaff:
		exp := req.Experience
		add := 10.0
		switch exp {
		case ExperienceIntermediate:
			add = 20
		case ExperienceAdvanced:
			add = 30
		default:
			exp = ExperienceBeginner
		}
		l := roundCm(h + add)
		rec.LengthCm = l
		rec.Explanation = fmt.Sprintf("Для роста %sсм и уровня %q рекомендуется шест %dсм.", hs, exp, l)
		rec.Alternatives = []string{"1.8м (стандарт)", "2.0м (высокий)", "1.6м (детский)"}
	case WeaponSpear:
		l := roundCm(h * 1.4)
		rec.LengthCm = l
		rec.Explanation = fmt.Sprintf("Для роста %sсм оптимальная длина копья %dсм (в 1.4 раза больше роста).", hs, l)
		rec.Alternatives = []string{cm(roundCm(h*1.3)) + " (короткое)", cm(roundCm(h*1.5)) + " (длинное)"}
	case WeaponDao:
		l := roundCm(h * 0.68)
		rec.LengthCm = l
		rec.Explanation = fmt.Sprintf("Для вашего роста %sсм оптимальная длина сабли %dсм.", hs, l)
		rec.Alternatives = []string{cm(l-3) + " (легкая)", cm(l+3) + " (тяжелая)"}
	}
	rec.RecommendedLength = cm(rec.LengthCm)
	return rec, nil
}
