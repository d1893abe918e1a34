package models

// Order log column names, in file order.
var LedgerColumns = []string{"Id", "Client", "Salesperson", "Date", "Time", "Items"}

// LedgerRecord is one committed order in the append-only order log.
// Records are immutable once appended; IDs are sequential and never reused,
// even across restarts, because the next ID is recomputed from the stored
// maximum at append time.
type LedgerRecord struct {
	ID          int         `json:"id"`
	Client      string      `json:"client"`
	Salesperson string      `json:"salesperson"`
	Date        string      `json:"date"`
	Time        string      `json:"time"`
	Items       []OrderLine `json:"items"`
}
