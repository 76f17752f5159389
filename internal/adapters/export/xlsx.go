// Package export renders orders as an Excel workbook for the back office.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/phenrril/fightshop/internal/domain"
)

const (
	OrdersSheet = "Заказы"
	ItemsSheet  = "Позиции"
)

var orderHeader = []any{
	"Номер", "Дата", "Статус", "Имя", "Фамилия", "Email", "Телефон", "Город", "Адрес", "Индекс",
	"Доставка", "Оплата", "Промокод", "Сумма товаров", "Скидка", "Стоимость доставки", "Итого",
}

var itemHeader = []any{"Номер заказа", "Товар", "ID товара", "Размер", "Цвет", "Цена", "Количество", "Сумма"}

// WriteOrders writes one row per order and one row per order line to w.
func WriteOrders(w io.Writer, orders []domain.Order) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", OrdersSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(ItemsSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(OrdersSheet, "A1", &orderHeader); err != nil {
		return err
	}
	if err := f.SetSheetRow(ItemsSheet, "A1", &itemHeader); err != nil {
		return err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	_ = f.SetRowStyle(OrdersSheet, 1, 1, style)
	_ = f.SetRowStyle(ItemsSheet, 1, 1, style)

	itemRow := 2
	for i, o := range orders {
		row := []any{
			o.Number, o.CreatedAt.Format("2006-01-02 15:04"), string(o.Status),
			o.Form.FirstName, o.Form.LastName, o.Form.Email, o.Form.Phone,
			o.Form.City, o.Form.Address, o.Form.ZipCode,
			string(o.DeliveryMethod), string(o.PaymentMethod), o.PromoCode,
			o.Subtotal, o.Discount, o.DeliveryPrice, o.Total,
		}
		if err := f.SetSheetRow(OrdersSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
		for _, it := range o.Items {
			line := []any{o.Number, it.Name, it.ProductID, it.Size, it.Color, it.Price, it.Quantity, it.Price * int64(it.Quantity)}
			if err := f.SetSheetRow(ItemsSheet, fmt.Sprintf("A%d", itemRow), &line); err != nil {
				return err
			}
			itemRow++
		}
	}
	_ = f.SetColWidth(OrdersSheet, "A", "Q", 16)
	_ = f.SetColWidth(ItemsSheet, "A", "H", 18)

	_, err = f.WriteTo(w)
	return err
}
