package appointment

import "github.com/compawny/scheduling-service/pkg/txmanager"

// DBExecutor is the database handle the repository runs on. Both
// *sql.DB and the dbmetrics wrapper satisfy it; when the context
// carries a transaction the repository uses that instead.
type DBExecutor = txmanager.DBExecutor
