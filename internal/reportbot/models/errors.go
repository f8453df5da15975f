package models

import "fmt"

var (
	ErrorAlreadyProcessed = fmt.Errorf("already_processed")
	ErrorDuplicateEntry   = fmt.Errorf("duplicate_entry")
	ErrorNotFound         = fmt.Errorf("not_found")
	ErrorUserDisabled     = fmt.Errorf("user_disabled")

	ErrorDatabaseUndefined       = fmt.Errorf("database_undefined")
	ErrorDeleteFailed            = fmt.Errorf("delete_failed")
	ErrorInsertFailed            = fmt.Errorf("insert_failed")
	ErrorInvalidInput            = fmt.Errorf("invalid_input")
	ErrorRowsAffectedCheckFailed = fmt.Errorf("rows_affected_check_failed")
	ErrorSelectFailed            = fmt.Errorf("select_failed")
	ErrorSelectsFailed           = fmt.Errorf("selects_failed")
	ErrorStmtPreparationFailed   = fmt.Errorf("stmt_preparation_failed")
	ErrorUpdateFailed            = fmt.Errorf("update_failed")

	mysqlErrorDuplicateEntryCode uint16 = 1062
)
