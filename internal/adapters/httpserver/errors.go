package httpserver

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/fightshop/internal/domain"
)

type errorMapping struct {
	err     error
	status  int
	message string
}

var errorMappings = []errorMapping{
	{domain.ErrPromoNotFound, http.StatusNotFound, "Промокод не найден"},
	{domain.ErrNotFound, http.StatusNotFound, "Не найдено"},
	{domain.ErrUnauthorized, http.StatusUnauthorized, "Требуется вход"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "Неверный email или пароль"},
	{domain.ErrEmailTaken, http.StatusConflict, "Пользователь с таким email уже существует"},
	{domain.ErrEmptyCart, http.StatusBadRequest, "Корзина пуста"},
	{domain.ErrInvalidTotal, http.StatusBadRequest, "Некорректная сумма заказа"},
	{domain.ErrInvalidSelection, http.StatusBadRequest, "Выбранный размер или цвет недоступен"},
	{domain.ErrPasswordMismatch, http.StatusBadRequest, "Пароли не совпадают"},
	{domain.ErrPasswordTooShort, http.StatusBadRequest, "Пароль должен содержать минимум 6 символов"},
}

// writeError maps domain errors to status codes. Anything unknown is logged and
// reported as a 500 without details.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": verrs})
		return
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			writeJSON(w, m.status, map[string]string{"error": m.message})
			return
		}
	}
	if ctxErr := r.Context().Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return
	}
	log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Внутренняя ошибка"})
}
