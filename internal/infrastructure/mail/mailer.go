package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/facturacion-api/internal/application/auth"
	"github.com/jhoicas/facturacion-api/internal/domain/entity"
	"github.com/jhoicas/facturacion-api/pkg/config"
	"gopkg.in/gomail.v2"
)

var _ auth.Notifier = (*Mailer)(nil)

// Mailer entrega códigos de un solo uso por SMTP (gomail). El envío corre
// acotado por un timeout (10 s por defecto): un SMTP colgado se reporta como
// fallo de entrega, igual que un rechazo.
type Mailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
	timeout  time.Duration
}

// NewMailer construye el transporte SMTP desde la configuración.
func NewMailer(cfg config.SMTPConfig) *Mailer {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Mailer{
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:     cfg.From,
		fromName: cfg.FromName,
		timeout:  timeout,
	}
}

// Send envía el código con la plantilla del propósito indicado. No se traga
// ningún error: el flujo que llama decide si compensa.
func (m *Mailer) Send(ctx context.Context, to, code string, kind entity.CodeKind) error {
	subject := "Verifica tu cuenta de empresa"
	intro := "Usa el siguiente código para completar tu registro en el sistema:"
	if kind == entity.CodeRecovery {
		subject = "Recupera tu contraseña"
		intro = "Usa el siguiente código para restablecer tu contraseña:"
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", codeBody(intro, code))

	// gomail no acepta context: el envío corre aparte y aquí se espera el
	// resultado o el vencimiento del plazo.
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- m.dialer.DialAndSend(msg) }()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("enviar correo a %s: %w", to, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("enviar correo a %s: %w", to, ctx.Err())
	}
}

func codeBody(intro, code string) string {
	return fmt.Sprintf(`
      <div style="font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; max-width: 600px; margin: 0 auto; background: #ffffff; padding: 40px; border-radius: 12px; border: 1px solid #e2e8f0;">
        <h2 style="color: #2563EB; text-align: center; margin-bottom: 30px;">Código de Verificación</h2>
        <p style="color: #475569; font-size: 16px; text-align: center;">Hola,</p>
        <p style="color: #475569; font-size: 16px; text-align: center;">%s</p>

        <div style="background-color: #eff6ff; padding: 20px; margin: 30px 0; border-radius: 8px; text-align: center;">
          <span style="font-size: 32px; font-weight: bold; letter-spacing: 5px; color: #1d4ed8;">%s</span>
        </div>

        <p style="color: #94a3b8; font-size: 12px; text-align: center; margin-top: 30px;">Si no solicitaste este código, ignora este mensaje.</p>
      </div>`, intro, code)
}
