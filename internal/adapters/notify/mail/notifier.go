package mail

import (
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strings"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/platform/logger"
)

type Config struct {
	SMTPAddr string
	Username string
	Password string
	From     string
	To       []string
}

// SendFunc tiene la firma de smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Notifier avisa por correo cuando cambia el estado de una mascota.
// Un fallo de envío se registra y nunca corta la petición.
type Notifier struct {
	cfg  Config
	auth smtp.Auth
	send SendFunc
	log  logger.Logger
}

func NewNotifier(cfg Config, log logger.Logger) *Notifier {
	if log == nil {
		log = logger.NewNop()
	}
	n := &Notifier{cfg: cfg, send: smtp.SendMail, log: log}
	if cfg.Username != "" {
		host, _, err := net.SplitHostPort(cfg.SMTPAddr)
		if err != nil {
			host = cfg.SMTPAddr
		}
		n.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, host)
	}
	return n
}

func (n *Notifier) WithSendFunc(f SendFunc) *Notifier {
	n.send = f
	return n
}

func (n *Notifier) Enabled() bool {
	return n.cfg.SMTPAddr != "" && n.cfg.From != "" && len(n.cfg.To) > 0
}

func (n *Notifier) PetStatusChanged(ctx context.Context, l pets.Listing, old pets.Status) {
	if !n.Enabled() {
		return
	}
	subject, body := StatusMessage(l, old)
	msg := buildMessage(n.cfg.From, n.cfg.To, subject, body)

	if err := n.send(n.cfg.SMTPAddr, n.auth, n.cfg.From, n.cfg.To, msg); err != nil {
		n.log.Error("pet status mail failed", map[string]any{
			"pet_id": l.Pet.ID,
			"err":    err,
		})
		return
	}
	n.log.Info("pet status mail sent", map[string]any{
		"pet_id":     l.Pet.ID,
		"old_status": old.String(),
		"new_status": l.Pet.Status.String(),
	})
}

// StatusMessage arma asunto y cuerpo en lituano.
func StatusMessage(l pets.Listing, old pets.Status) (subject, body string) {
	subject = fmt.Sprintf("%s gyvūno statusas pakeistas", l.Pet.Name)
	body = fmt.Sprintf("%s gyvūno iš prieglaudos %s statusas \"%s\" pakeistas į \"%s\".",
		l.Pet.Name, l.Shelter.Name, old.Label(), l.Pet.Status.Label())
	return subject, body
}

func buildMessage(from string, to []string, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(to, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return []byte(b.String())
}
