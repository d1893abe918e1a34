package repositories

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/VASCOSORO/soopbeta/models"
	"github.com/VASCOSORO/soopbeta/pkg/logger"
)

// LedgerRepositoryInterface is the append-only order log. Records are never
// updated or deleted; IDs are assigned by scanning the stored maximum at
// append time, so they stay monotonic across restarts.
type LedgerRepositoryInterface interface {
	NextID() int
	Append(rec *models.LedgerRecord) error
	GetAll() ([]*models.LedgerRecord, error)
}

// LedgerRepository implements LedgerRepositoryInterface over one CSV file.
type LedgerRepository struct {
	path   string
	logger *logger.Logger
}

// NewLedgerRepository creates an order log repository backed by the CSV
// file at path. The file is created with its header row on first append.
func NewLedgerRepository(path string, logger *logger.Logger) *LedgerRepository {
	return &LedgerRepository{
		path:   path,
		logger: logger.WithComponent("ledger_repository"),
	}
}

// NextID returns max stored ID + 1, or 1 when the log is empty or cannot be
// read. Reading the log fresh on every call is what keeps IDs monotonic
// even when the process restarts between commits.
func (r *LedgerRepository) NextID() int {
	records, err := r.GetAll()
	if err != nil {
		r.logger.Warn("Order log unreadable, restarting IDs at 1", "path", r.path, "error", err)
		return 1
	}
	max := 0
	for _, rec := range records {
		if rec.ID > max {
			max = rec.ID
		}
	}
	return max + 1
}

// Append writes one record to the end of the log, creating the file with
// its header row when absent.
func (r *LedgerRepository) Append(rec *models.LedgerRecord) error {
	if err := r.ensureFile(); err != nil {
		return err
	}

	items, err := json.Marshal(rec.Items)
	if err != nil {
		return fmt.Errorf("serialize order items: %w", err)
	}

	f, err := os.OpenFile(r.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		r.logger.Error("Failed to open order log for append", "path", r.path, "error", err)
		return fmt.Errorf("open order log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	row := []string{
		strconv.Itoa(rec.ID),
		rec.Client,
		rec.Salesperson,
		rec.Date,
		rec.Time,
		string(items),
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("append order log: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		r.logger.Error("Failed to flush order log", "path", r.path, "error", err)
		return fmt.Errorf("append order log: %w", err)
	}

	r.logger.Info("Order appended to log", "order_id", rec.ID, "client", rec.Client)
	return nil
}

// GetAll reads every record in the log. Malformed rows are skipped, not
// fatal; a missing file yields an empty log.
func (r *LedgerRepository) GetAll() ([]*models.LedgerRecord, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open order log: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records []*models.LedgerRecord
	first := true
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			return nil, fmt.Errorf("read order log: %w", err)
		}
		if first {
			first = false
			continue // header
		}
		if len(row) < len(models.LedgerColumns) {
			continue
		}
		id, err := strconv.Atoi(row[0])
		if err != nil || id <= 0 {
			continue
		}
		rec := &models.LedgerRecord{
			ID:          id,
			Client:      row[1],
			Salesperson: row[2],
			Date:        row[3],
			Time:        row[4],
		}
		if err := json.Unmarshal([]byte(row[5]), &rec.Items); err != nil {
			r.logger.Warn("Order log row has unreadable items blob", "order_id", id, "error", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (r *LedgerRepository) ensureFile() error {
	if _, err := os.Stat(r.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat order log: %w", err)
	}

	f, err := os.OpenFile(r.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create order log: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(models.LedgerColumns); err != nil {
		return fmt.Errorf("write order log header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write order log header: %w", err)
	}
	r.logger.Info("Order log created", "path", r.path)
	return nil
}
