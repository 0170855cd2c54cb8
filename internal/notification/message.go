package notification

import (
	"fmt"
	"log"
	"time"

	"portaria-backend/internal/model"
	"portaria-backend/internal/parse"
)

// Type tags a message for the receiving gateway.
type Type string

const (
	TypeDelivery   Type = "delivery"
	TypeWithdrawal Type = "withdrawal"
	TypeReminder   Type = "reminder"
	TypeTest       Type = "test"
)

// Message is the resident-facing notification document posted to each
// transport. The structured payload mirrors the rendered text in
// machine-readable form; field names follow the gateway contract.
type Message struct {
	To   string `json:"to"`
	Body string `json:"message"`
	Type Type   `json:"type"`

	Delivery   *DeliveryData   `json:"deliveryData,omitempty"`
	Withdrawal *WithdrawalData `json:"withdrawalData,omitempty"`
	Reminder   *ReminderData   `json:"reminderData,omitempty"`

	// ResidentID routes the optional web push channel; not serialized.
	ResidentID int64 `json:"-"`
}

// DeliveryData is the structured payload for a registration notice.
type DeliveryData struct {
	Code        string `json:"codigo"`
	Resident    string `json:"morador"`
	Unit        string `json:"apartamento"`
	Block       string `json:"bloco"`
	Notes       string `json:"observacoes"`
	PhotoURL    string `json:"foto_url"`
	Date        string `json:"data"`
	Time        string `json:"hora"`
	Condominium string `json:"condominio"`
}

// WithdrawalData is the structured payload for a pickup confirmation.
type WithdrawalData struct {
	Code        string `json:"codigo"`
	Resident    string `json:"morador"`
	Unit        string `json:"apartamento"`
	Block       string `json:"bloco"`
	Description string `json:"descricao"`
	PhotoURL    string `json:"foto_url"`
	Date        string `json:"data"`
	Time        string `json:"hora"`
	Condominium string `json:"condominio"`
}

// ReminderData is the structured payload for a pending-pickup reminder.
type ReminderData struct {
	Code        string `json:"codigo"`
	Resident    string `json:"morador"`
	Unit        string `json:"apartamento"`
	Block       string `json:"bloco"`
	DaysPending int    `json:"diasPendente"`
	Condominium string `json:"condominio"`
}

const autoReplyFooter = "\n\nNão responda esta mensagem, este é um atendimento automático."

// recipientPhone normalizes the resident's phone for the gateways; on a
// malformed number the stored value is passed through and the gateway
// decides.
func recipientPhone(d model.Delivery) string {
	p, err := parse.Phone(d.Resident.Phone)
	if err != nil {
		log.Printf("Warning: could not normalize phone for resident %d: %v", d.ResidentID, err)
		return d.Resident.Phone
	}
	return p
}

func condominiumName(d model.Delivery) string {
	if d.Condominium.Name != "" {
		return d.Condominium.Name
	}
	return "Condomínio"
}

// NewDeliveryMessage renders the "new package arrived" notice.
func NewDeliveryMessage(d model.Delivery, now time.Time) Message {
	date := now.Format("02/01/2006")
	hour := now.Format("15:04")
	condo := condominiumName(d)

	body := fmt.Sprintf(
		"🏢 *%s*\n\n📦 *Nova Encomenda Chegou!*\n\nOlá *%s*, você tem uma nova encomenda!\n\n📅 Data: %s\n⏰ Hora: %s\n🔑 Código de retirada: *%s*\n\nPara retirar, apresente este código na portaria.%s",
		condo, d.Resident.Name, date, hour, d.PickupCode, autoReplyFooter)

	return Message{
		To:         recipientPhone(d),
		Body:       body,
		Type:       TypeDelivery,
		ResidentID: d.ResidentID,
		Delivery: &DeliveryData{
			Code:        d.PickupCode,
			Resident:    d.Resident.Name,
			Unit:        d.Resident.Unit,
			Block:       d.Resident.Block,
			Notes:       d.Notes,
			PhotoURL:    d.PhotoURL,
			Date:        date,
			Time:        hour,
			Condominium: condo,
		},
	}
}

// NewWithdrawalMessage renders the pickup confirmation notice.
func NewWithdrawalMessage(d model.Delivery, now time.Time) Message {
	date := now.Format("02/01/2006")
	hour := now.Format("15:04")
	condo := condominiumName(d)

	body := fmt.Sprintf(
		"🏢 *%s*\n\n✅ *Encomenda Retirada*\n\nOlá *%s*, sua encomenda foi retirada com sucesso!\n\n📅 Data: %s\n⏰ Hora: %s\n🔑 Código: %s",
		condo, d.Resident.Name, date, hour, d.PickupCode)
	if d.WithdrawalNotes != "" {
		body += fmt.Sprintf("\n📝 %s", d.WithdrawalNotes)
	}
	body += autoReplyFooter

	return Message{
		To:         recipientPhone(d),
		Body:       body,
		Type:       TypeWithdrawal,
		ResidentID: d.ResidentID,
		Withdrawal: &WithdrawalData{
			Code:        d.PickupCode,
			Resident:    d.Resident.Name,
			Unit:        d.Resident.Unit,
			Block:       d.Resident.Block,
			Description: d.WithdrawalNotes,
			PhotoURL:    d.PhotoURL,
			Date:        date,
			Time:        hour,
			Condominium: condo,
		},
	}
}

// NewReminderMessage renders the "package still waiting" reminder.
func NewReminderMessage(d model.Delivery, now time.Time) Message {
	days := int(now.Sub(d.RegisteredAt).Hours() / 24)
	condo := condominiumName(d)

	body := fmt.Sprintf(
		"🏢 *%s*\n\n📦 *Lembrete de Encomenda*\n\nOlá *%s*, você tem uma encomenda aguardando retirada na portaria há %d dias.\n\n🔑 Código: %s\n🏠 Apartamento: %s\n📅 Recebida em: %s\n\nPor favor, retire sua encomenda o quanto antes.%s",
		condo, d.Resident.Name, days, d.PickupCode, d.Resident.Apartment(),
		d.RegisteredAt.Format("02/01/2006"), autoReplyFooter)

	return Message{
		To:         recipientPhone(d),
		Body:       body,
		Type:       TypeReminder,
		ResidentID: d.ResidentID,
		Reminder: &ReminderData{
			Code:        d.PickupCode,
			Resident:    d.Resident.Name,
			Unit:        d.Resident.Unit,
			Block:       d.Resident.Block,
			DaysPending: days,
			Condominium: condo,
		},
	}
}
