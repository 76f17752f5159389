package notify

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/phenrril/fightshop/internal/domain"
)

type MailConfig struct {
	Host string
	Port int
	User string
	Pass string
	To   string
}

func (c MailConfig) Enabled() bool {
	return c.Host != "" && c.Port != 0 && c.User != "" && c.To != ""
}

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer emails the order summary to the shop inbox and a copy to the customer.
type Mailer struct {
	cfg    MailConfig
	sender sender
}

func NewMailer(cfg MailConfig) *Mailer {
	return &Mailer{cfg: cfg, sender: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass)}
}

func (m *Mailer) messages(o *domain.Order) []*gomail.Message {
	staff := gomail.NewMessage()
	staff.SetHeader("From", m.cfg.User)
	staff.SetHeader("To", m.cfg.To)
	staff.SetHeader("Subject", Subject(o))
	staff.SetBody("text/plain", Body(o))
	out := []*gomail.Message{staff}

	if o.Form.Email != "" {
		c := gomail.NewMessage()
		c.SetHeader("From", m.cfg.User)
		c.SetAddressHeader("To", o.Form.Email, o.Form.FirstName+" "+o.Form.LastName)
		c.SetHeader("Subject", "Ваш заказ "+o.Number+" принят")
		c.SetBody("text/plain", "Спасибо за заказ! Отследить его можно по номеру "+o.Number+".\n\n"+Body(o))
		out = append(out, c)
	}
	return out
}

func (m *Mailer) OrderPlaced(ctx context.Context, o *domain.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.sender.DialAndSend(m.messages(o)...); err != nil {
		return fmt.Errorf("send order email: %w", err)
	}
	return nil
}
