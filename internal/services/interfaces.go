package services

import (
	"time"

	"gorm.io/gorm"

	"parishbooks/internal/models"
	"parishbooks/internal/pagination"
)

// LedgerOp says whether a ledger delta introduces a contribution or
// reverses a previously applied one.
type LedgerOp string

const (
	LedgerOpCreate LedgerOp = "create"
	LedgerOpDelete LedgerOp = "delete"
)

// LedgerKind is the transaction type a ledger delta belongs to.
type LedgerKind string

const (
	LedgerKindIncome      LedgerKind = "income"
	LedgerKindExpenditure LedgerKind = "expenditure"
	LedgerKindTransferIn  LedgerKind = "transfer_in"
	LedgerKindTransferOut LedgerKind = "transfer_out"
)

// AccountUpdateFields holds optional fields for updating an account.
type AccountUpdateFields struct {
	Name          *string
	Description   *string
	BankName      *string
	AccountNumber *string
	IsActive      *bool
}

// AccountServicer defines the contract for account-related business logic,
// including the balance ledger used by every money-moving flow.
type AccountServicer interface {
	CreateAccount(name string, accountType models.AccountType, description, currency, bankName, accountNumber string, initialBalance int64) (*models.Account, error)
	GetAccounts(page pagination.PageRequest) (*pagination.PageResponse[models.Account], error)
	GetAccountByID(accountID string) (*models.Account, error)
	UpdateAccount(accountID string, fields AccountUpdateFields) (*models.Account, error)
	ApplyBalanceDelta(tx *gorm.DB, accountID string, amount int64, op LedgerOp, kind LedgerKind) error
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(name string, categoryType models.CategoryType, description, color string) (*models.Category, error)
	GetCategories(page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoriesByType(categoryType models.CategoryType, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	GetCategoryByID(categoryID string) (*models.Category, error)
	UpdateCategory(categoryID string, name, description, color string) (*models.Category, error)
	DeleteCategory(categoryID string) error
	ResolveLoanCategory() (*models.Category, error)
}

// EntryInput holds the fields for creating an income or expenditure entry.
type EntryInput struct {
	Amount        int64
	Date          time.Time
	Description   string
	CategoryID    *string
	AccountID     *string
	PaymentMethod string
}

// EntryUpdateFields holds optional fields for updating an entry.
type EntryUpdateFields struct {
	Amount        *int64
	Date          *time.Time
	Description   *string
	CategoryID    *string
	AccountID     *string
	PaymentMethod *string
}

// EntryFilter holds optional filter parameters for listing entries.
type EntryFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	CategoryID *string
	AccountID  *string
	MinAmount  *int64
	MaxAmount  *int64
}

// IncomeServicer defines the contract for income-entry business logic.
type IncomeServicer interface {
	CreateIncome(input EntryInput) (*models.Income, error)
	GetIncomes(page pagination.PageRequest, filter EntryFilter) (*pagination.PageResponse[models.Income], error)
	GetIncomeByID(incomeID string) (*models.Income, error)
	UpdateIncome(incomeID string, fields EntryUpdateFields) (*models.Income, error)
	DeleteIncome(incomeID string) error
}

// ExpenditureServicer defines the contract for expenditure-entry business logic.
type ExpenditureServicer interface {
	CreateExpenditure(input EntryInput) (*models.Expenditure, error)
	GetExpenditures(page pagination.PageRequest, filter EntryFilter) (*pagination.PageResponse[models.Expenditure], error)
	GetExpenditureByID(expenditureID string) (*models.Expenditure, error)
	UpdateExpenditure(expenditureID string, fields EntryUpdateFields) (*models.Expenditure, error)
	DeleteExpenditure(expenditureID string) error
}

// LiabilityInput holds the fields for creating a liability.
type LiabilityInput struct {
	CreditorName  string
	TotalAmount   int64
	Date          time.Time
	IsLoan        models.LoanFlag
	AccountID     *string
	PaymentMethod string
	Notes         string
}

// LiabilityUpdateFields holds optional fields for updating a liability.
type LiabilityUpdateFields struct {
	CreditorName  *string
	TotalAmount   *int64
	Date          *time.Time
	IsLoan        *models.LoanFlag
	AccountID     *string
	PaymentMethod *string
	Notes         *string
}

// PaymentInput holds the fields for recording a liability payment.
type PaymentInput struct {
	Amount        int64
	Date          time.Time
	AccountID     string
	PaymentMethod string
	Note          string
}

// LiabilityServicer defines the contract for liability business logic.
// Mutations return reconciliation warnings alongside the primary result:
// a failed income sync never fails the liability write itself.
type LiabilityServicer interface {
	CreateLiability(input LiabilityInput) (*models.Liability, []string, error)
	GetLiabilities(page pagination.PageRequest) (*pagination.PageResponse[models.Liability], error)
	GetLiabilityByID(liabilityID string) (*models.Liability, error)
	UpdateLiability(liabilityID string, fields LiabilityUpdateFields) (*models.Liability, []string, error)
	MakePayment(liabilityID string, input PaymentInput) (*models.Liability, []string, error)
	DeleteLiability(liabilityID string) error
}

// SyncResult reports what a reconciliation run did. Warnings carry
// non-fatal ledger-delta failures: the income entry is consistent but an
// account balance may be stale.
type SyncResult struct {
	IncomeID string
	Created  bool
	Updated  bool
	Warnings []string
}

// ReconcileServicer keeps the derived income entry of a loan liability in
// sync with the liability and the account balance ledger.
type ReconcileServicer interface {
	SyncLoanIncome(liability *models.Liability) (*SyncResult, error)
	FindLoanIncome(liability *models.Liability) (*models.Income, error)
}

// MemberUpdateFields holds optional fields for updating a member.
type MemberUpdateFields struct {
	FirstName   *string
	LastName    *string
	Gender      *string
	Phone       *string
	Email       *string
	Address     *string
	DateOfBirth *time.Time
	JoinedAt    *time.Time
	Status      *models.MemberStatus
	Notes       *string
}

// MemberServicer defines the contract for member-registry business logic.
type MemberServicer interface {
	CreateMember(firstName, lastName, gender, phone, email, address string, dateOfBirth, joinedAt *time.Time, status models.MemberStatus) (*models.Member, error)
	GetMembers(page pagination.PageRequest, search string, status *models.MemberStatus) (*pagination.PageResponse[models.Member], error)
	GetMemberByID(memberID string) (*models.Member, error)
	UpdateMember(memberID string, fields MemberUpdateFields) (*models.Member, error)
	DeleteMember(memberID string) error
}

// EventServicer defines the contract for event-calendar business logic.
type EventServicer interface {
	CreateEvent(name, description, location string, startsAt time.Time, endsAt *time.Time) (*models.Event, error)
	GetEvents(page pagination.PageRequest, from, to *time.Time) (*pagination.PageResponse[models.Event], error)
	GetEventByID(eventID string) (*models.Event, error)
	UpdateEvent(eventID string, name, description, location string, startsAt, endsAt *time.Time) (*models.Event, error)
	DeleteEvent(eventID string) error
}

// AttendanceSummary aggregates attendance for one event.
type AttendanceSummary struct {
	EventID string `json:"event_id"`
	Present int64  `json:"present"`
	Absent  int64  `json:"absent"`
}

// AttendanceServicer defines the contract for attendance capture.
type AttendanceServicer interface {
	RecordAttendance(eventID, memberID string, present bool, note string) (*models.Attendance, error)
	GetEventAttendance(eventID string, page pagination.PageRequest) (*pagination.PageResponse[models.Attendance], error)
	GetMemberAttendance(memberID string, page pagination.PageRequest) (*pagination.PageResponse[models.Attendance], error)
	GetEventSummary(eventID string) (*AttendanceSummary, error)
	DeleteAttendance(attendanceID string) error
}

// Sender delivers a single SMS. Provider integrations implement this;
// the default implementation only queues.
type Sender interface {
	Send(phone, body string) error
}

// MessageServicer defines the contract for outbound member messaging.
type MessageServicer interface {
	SendToMembers(body string, memberIDs []string) (*models.Message, error)
	GetMessages(page pagination.PageRequest) (*pagination.PageResponse[models.Message], error)
	GetMessageByID(messageID string) (*models.Message, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
