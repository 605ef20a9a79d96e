package sync

import (
	"context"
	"fmt"
	"time"

	"notion-mirror/internal/config"
	"notion-mirror/internal/features/schema"
	"notion-mirror/internal/notion"

	"go.uber.org/zap"
)

const pageSize = 100

// QueryClient is the remote query capability.
type QueryClient interface {
	QueryDatabase(ctx context.Context, req notion.QueryRequest) (*notion.QueryResult, error)
}

// Flattener converts a record's document body into plain markdown.
type Flattener interface {
	ToMarkdown(ctx context.Context, pageID string) (string, error)
}

type SyncService interface {
	RunCycle(ctx context.Context, carried *State) (*CycleResult, error)
}

type SyncServiceImpl struct {
	databaseID    string
	SchemaService schema.SchemaService
	Remote        QueryClient
	Flattener     Flattener
	Writer        Writer
	Logger        *zap.Logger
}

func NewSyncService(cfg *config.Config, schemaService schema.SchemaService, remote QueryClient, flattener Flattener, writer Writer, logger *zap.Logger) SyncService {
	return &SyncServiceImpl{
		databaseID:    cfg.NotionDatabaseID,
		SchemaService: schemaService,
		Remote:        remote,
		Flattener:     flattener,
		Writer:        writer,
		Logger:        logger,
	}
}

// RunCycle executes one bounded, resumable sync invocation.
//
// A carried cursor resumes the current page sequence; a carried watermark
// starts a new cycle over records edited after it; no carried state at all
// is a true first run and triggers schema reconciliation. Records are
// processed one at a time in remote edit-time order so the watermark
// computed from the last record is a valid lower bound for the next cycle.
func (s *SyncServiceImpl) RunCycle(ctx context.Context, carried *State) (*CycleResult, error) {
	// The mapping is needed on every invocation, resumed pages included.
	mapping, err := s.SchemaService.FetchMapping(ctx)
	if err != nil {
		return nil, err
	}

	firstRun := carried == nil || (carried.Cursor == nil && carried.LastSyncTime == nil)
	if firstRun {
		if _, err := s.SchemaService.Reconcile(ctx, mapping); err != nil {
			return nil, err
		}
	}

	req := notion.QueryRequest{DatabaseID: s.databaseID, PageSize: pageSize}
	if carried != nil {
		switch {
		case carried.Cursor != nil:
			req.Cursor = *carried.Cursor
		case carried.LastSyncTime != nil:
			req.EditedAfter = carried.LastSyncTime
		}
	}

	page, err := s.Remote.QueryDatabase(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &CycleResult{}
	table := s.SchemaService.TableName()
	knownColumns := mapping.ColumnNames()

	for _, record := range page.Pages {
		if err := s.processRecord(ctx, table, record, mapping, knownColumns); err != nil {
			result.Errors++
			result.ErrorMessages = append(result.ErrorMessages, fmt.Sprintf("record %s: %v", record.ID, err))
			s.Logger.Warn("record sync failed", zap.String("record", record.ID), zap.Error(err))
			continue
		}
		result.Processed++
	}

	switch {
	case page.HasMore:
		cursor := page.NextCursor
		result.HasMore = true
		result.NextState = &State{Cursor: &cursor}
	case len(page.Pages) > 0:
		watermark := page.Pages[len(page.Pages)-1].LastEditedTime
		result.NextState = &State{LastSyncTime: &watermark}
	}
	// Zero records without a next page leaves the next state undefined;
	// the host may retry from the same watermark later.

	s.Logger.Info("sync cycle finished",
		zap.Int("processed", result.Processed),
		zap.Int("errors", result.Errors),
		zap.Bool("has_more", result.HasMore))

	return result, nil
}

// processRecord extracts, flattens and upserts one record. Failures here
// are isolated to the record; a flatten failure merely degrades the body to
// empty content.
func (s *SyncServiceImpl) processRecord(ctx context.Context, table string, page notion.Page, mapping schema.Mapping, knownColumns []string) error {
	values := ExtractValues(page, mapping, s.Logger)

	content, err := s.Flattener.ToMarkdown(ctx, page.ID)
	if err != nil {
		s.Logger.Warn("content flatten failed, storing empty content",
			zap.String("record", page.ID), zap.Error(err))
		content = ""
	}

	record := &Record{
		ID:       page.ID,
		Content:  content,
		SyncedAt: time.Now().UTC(),
		Values:   values,
	}

	return s.Writer.Upsert(ctx, table, record, knownColumns)
}
