package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/fightshop/internal/domain"
)

func TestRecommendSize(t *testing.T) {
	tests := []struct {
		name   string
		req    SizeRequest
		length string
		alts   []string
	}{
		{"sword", SizeRequest{Weapon: WeaponSword, Height: 170}, "111см", []string{"106см (для начинающих)", "116см (для продвинутых)"}},
		{"staff beginner", SizeRequest{Weapon: WeaponStaff, Height: 170}, "180см", []string{"1.8м (стандарт)", "2.0м (высокий)", "1.6м (детский)"}},
		{"staff advanced", SizeRequest{Weapon: WeaponStaff, Height: 170, Experience: ExperienceAdvanced}, "200см", nil},
		{"spear", SizeRequest{Weapon: WeaponSpear, Height: 180}, "252см", []string{"234см (короткое)", "270см (длинное)"}},
		{"dao", SizeRequest{Weapon: WeaponDao, Height: 175}, "119см", []string{"116см (легкая)", "122см (тяжелая)"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := RecommendSize(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.length, rec.RecommendedLength)
			if tt.alts != nil {
				assert.Equal(t, tt.alts, rec.Alternatives)
			}
			assert.InDelta(t, tt.req.Height*1.05, rec.ArmSpan, 0.001)
		})
	}
}

func TestRecommendSizeRejectsBadInput(t *testing.T) {
	_, err := RecommendSize(SizeRequest{Weapon: WeaponSword})
	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "height")

	_, err = RecommendSize(SizeRequest{Weapon: "nunchaku", Height: 170})
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "weapon")
}
