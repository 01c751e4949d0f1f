package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "parishbooks/internal/errors"
	"parishbooks/internal/logger"
	"parishbooks/internal/models"
	"parishbooks/internal/pagination"
)

// messageService handles outbound member messaging. Delivery goes through
// an injected Sender; provider specifics live behind that interface.
type messageService struct {
	db         *gorm.DB
	sender     Sender
	senderName string
}

// NewMessageService creates a new MessageServicer. A nil sender leaves
// messages queued without attempting delivery.
func NewMessageService(db *gorm.DB, sender Sender, senderName string) MessageServicer {
	return &messageService{db: db, sender: sender, senderName: senderName}
}

// logSender marks every message as sent and logs it. Stands in until an
// SMS provider is configured.
type logSender struct{}

// NewLogSender creates a Sender that only logs outgoing messages.
func NewLogSender() Sender {
	return logSender{}
}

func (logSender) Send(phone, body string) error {
	logger.Get().Infow("sms (log sender)", "phone", phone, "chars", len(body))
	return nil
}

// SendToMembers persists a message with one recipient row per member that
// has a phone number, then attempts delivery. Delivery failures are
// recorded per recipient and never fail the send as a whole.
func (s *messageService) SendToMembers(body string, memberIDs []string) (*models.Message, error) {
	if body == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "message body is required")
	}
	if len(memberIDs) == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "at least one recipient is required")
	}

	var members []models.Member
	if err := s.db.Where("id IN ? AND phone != ''", memberIDs).Find(&members).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(members) == 0 {
		return nil, apperrors.ErrNoRecipients
	}

	message := &models.Message{
		Body:       body,
		SenderName: s.senderName,
	}
	for i := range members {
		message.Recipients = append(message.Recipients, models.MessageRecipient{
			MemberID: members[i].ID,
			Phone:    members[i].Phone,
			Status:   models.MessageStatusQueued,
		})
	}

	if err := s.db.Create(message).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if s.sender != nil {
		s.deliver(message)
	}

	return message, nil
}

// deliver attempts delivery recipient by recipient, updating each row's
// status as it goes.
func (s *messageService) deliver(message *models.Message) {
	for i := range message.Recipients {
		r := &message.Recipients[i]

		status := models.MessageStatusSent
		sendErr := s.sender.Send(r.Phone, message.Body)
		errText := ""
		if sendErr != nil {
			status = models.MessageStatusFailed
			errText = sendErr.Error()
			logger.Get().Warnw("message delivery failed",
				"message_id", message.ID,
				"member_id", r.MemberID,
				"error", sendErr,
			)
		}

		if err := s.db.Model(&models.MessageRecipient{}).
			Where("id = ?", r.ID).
			Updates(map[string]interface{}{"status": status, "error": errText}).Error; err != nil {
			logger.Get().Errorw("failed to update recipient status",
				"message_id", message.ID,
				"recipient_id", r.ID,
				"error", err,
			)
			continue
		}
		r.Status = status
		r.Error = errText
	}
}

// GetMessages retrieves a paginated list of sent messages.
func (s *messageService) GetMessages(page pagination.PageRequest) (*pagination.PageResponse[models.Message], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.Model(&models.Message{})
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var messages []models.Message
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Preload("Recipients").
		Find(&messages).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(messages, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetMessageByID retrieves one message with its recipients.
func (s *messageService) GetMessageByID(messageID string) (*models.Message, error) {
	var message models.Message
	if err := s.db.Preload("Recipients").Where("id = ?", messageID).First(&message).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMessageNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &message, nil
}
