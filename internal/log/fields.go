package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldOperation = "operation"
	FieldError     = "error"
	FieldSuccess   = "success"
	FieldGroupID   = "group_id"
	FieldGroupName = "group_name"
	FieldMemberID  = "member_id"
	FieldPhone     = "phone"
	FieldMonth     = "month"
	FieldAmount    = "amount"
	FieldReceipt   = "receipt"
	FieldKey       = "key"
	FieldPath      = "path"
	FieldRows      = "rows"
	FieldAccepted  = "accepted"
	FieldRejected  = "rejected"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentRegistry = "registry"
	ComponentLedger   = "ledger"
	ComponentBackup   = "backup"
	ComponentImporter = "importer"
	ComponentStorage  = "storage"
	ComponentAMQP     = "amqp"
	ComponentNotifier = "notifier"
	ComponentBackend  = "backend"
	ComponentReports  = "reports"
)

// Operations defines standard operation names
const (
	OpRecord   = "record"
	OpAllot    = "allot"
	OpEnroll   = "enroll"
	OpImport   = "import"
	OpExport   = "export"
	OpRestore  = "restore"
	OpLoad     = "load"
	OpPersist  = "persist"
	OpPublish  = "publish"
	OpConsume  = "consume"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithPayment adds payment-related fields
func (f LogFields) WithPayment(memberID string, month int, amount int64, receipt string) LogFields {
	f[FieldMemberID] = memberID
	f[FieldMonth] = month
	f[FieldAmount] = amount
	f[FieldReceipt] = receipt
	return f
}

// WithGroup adds group-related fields
func (f LogFields) WithGroup(groupID, groupName string) LogFields {
	f[FieldGroupID] = groupID
	f[FieldGroupName] = groupName
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
