package usecase

import (
	"fmt"
	"time"

	"github.com/phenrril/fightshop/internal/domain"
)

var statusBadges = map[domain.OrderStatus]domain.StatusBadge{
	domain.OrderStatusPending:   {Label: "Обрабатывается", Variant: "secondary"},
	domain.OrderStatusConfirmed: {Label: "Подтверждён", Variant: "default"},
	domain.OrderStatusPreparing: {Label: "Готовится к отправке", Variant: "default"},
	domain.OrderStatusShipped:   {Label: "Отправлен", Variant: "default"},
	domain.OrderStatusDelivered: {Label: "Доставлен", Variant: "default"},
	domain.OrderStatusCancelled: {Label: "Отменён", Variant: "destructive"},
}

// Badge returns the label for status; unknown statuses render as pending.
func Badge(status domain.OrderStatus) domain.StatusBadge {
	if b, ok := statusBadges[status]; ok {
		return b
	}
	return statusBadges[domain.OrderStatusPending]
}

type trackingStage struct {
	status      domain.OrderStatus
	offset      time.Duration
	description string
}

var trackingStages = []trackingStage{
	{domain.OrderStatusPending, 0, "Заказ получен и обрабатывается"},
	{domain.OrderStatusConfirmed, time.Hour, "Заказ подтверждён, передан на склад"},
	{domain.OrderStatusPreparing, 24 * time.Hour, "Товар упакован и готов к отправке"},
	{domain.OrderStatusShipped, 48 * time.Hour, "Заказ передан в службу доставки"},
	{domain.OrderStatusDelivered, 72 * time.Hour, "Заказ доставлен получателю"},
}

func stageIndex(s domain.OrderStatus) int {
	for i, st := range trackingStages {
		if st.status == s {
			return i
		}
	}
	return -1
}

// TrackingSteps projects the five delivery checkpoints from now. A step is completed when
// the order is at or past it; the first step is always completed. Nothing here advances
// the stored status.
func TrackingSteps(status domain.OrderStatus, now time.Time) []domain.TrackingStep {
	cur := stageIndex(status)
	steps := make([]domain.TrackingStep, 0, len(trackingStages))
	for i, st := range trackingStages {
		steps = append(steps, domain.TrackingStep{
			Status:      st.status,
			Date:        ShortDate(now.Add(st.offset)),
			Description: st.description,
			Completed:   i == 0 || (cur >= 0 && i <= cur),
		})
	}
	return steps
}

var genitiveMonths = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// ShortDate formats t as 19.10.2026.
func ShortDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// LongDate formats t as "19 октября 2026 г.".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d г.", t.Day(), genitiveMonths[t.Month()-1], t.Year())
}
