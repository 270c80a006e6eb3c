package log

// Common field names for structured logging
const (
	FieldComponent       = "component"
	FieldError           = "error"
	FieldErrorType       = "error_type"
	FieldOperation       = "operation"
	FieldDriver          = "driver"
	FieldTransactionID   = "transaction_id"
	FieldTransactionType = "type"
	FieldTransactionDate = "transaction_date"
	FieldAmount          = "amount"
	FieldFilterType      = "filter_type"
	FieldSortBy          = "sort_by"
	FieldSortOrder       = "sort_order"
	FieldRowCount        = "rows"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentCLI     = "cli"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentMigrate = "migrate"
	ComponentAMQP    = "amqp"
	ComponentBackend = "backend"
)

// Operations defines standard operation names
const (
	OpConnect   = "connect"
	OpSchema    = "ensure_schema"
	OpMigrate   = "migrate"
	OpInsert    = "insert"
	OpQuery     = "query"
	OpAggregate = "aggregates"
	OpPublish   = "publish"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeValidation    = "validation_error"
	ErrorTypeConfiguration = "configuration_error"
	ErrorTypeDatabase      = "database_error"
	ErrorTypeConstraint    = "constraint_error"
	ErrorTypeNetwork       = "network_error"
	ErrorTypeInternal      = "internal_error"
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

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithErrorType adds the error category
func (f LogFields) WithErrorType(errorType string) LogFields {
	f[FieldErrorType] = errorType
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithTransaction adds transaction-related fields
func (f LogFields) WithTransaction(id, txType, date, amount string) LogFields {
	f[FieldTransactionID] = id
	f[FieldTransactionType] = txType
	f[FieldTransactionDate] = date
	f[FieldAmount] = amount
	return f
}

// WithQuery adds query selection fields
func (f LogFields) WithQuery(filterType, sortBy, sortOrder string) LogFields {
	f[FieldFilterType] = filterType
	f[FieldSortBy] = sortBy
	f[FieldSortOrder] = sortOrder
	return f
}

// With adds an arbitrary field
func (f LogFields) With(key string, value any) LogFields {
	f[key] = value
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
