package db

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/EmanuelGdA/AnjoAnimal/models"
)

const reportsCollection = "reports"

// Store is the only component that talks to Firestore. It is constructed
// once at process start and handed to every handler that needs it.
//
// The operation contract deliberately mirrors the office's client
// applications: mutations report success as booleans or nil sentinels, list
// reads degrade to an empty collection, and no raw backend error ever
// reaches a caller. Failures are logged here instead.
type Store struct {
	client *firestore.Client
	logger *zap.Logger
	now    func() time.Time
}

// NewStore initializes the Firestore client for the given project.
func NewStore(ctx context.Context, projectID, credentialsPath string, logger *zap.Logger) (*Store, error) {
	opt := option.WithCredentialsFile(credentialsPath)

	config := &firebase.Config{ProjectID: projectID}
	app, err := firebase.NewApp(ctx, config, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firestore client: %w", err)
	}

	logger.Info("connected to Firestore", zap.String("project", projectID))

	return &Store{
		client: client,
		logger: logger,
		now:    time.Now,
	}, nil
}

// Close closes the Firestore client
func (s *Store) Close() error {
	return s.client.Close()
}

// ListReports returns every report ordered by creation date, newest first.
// A failed query yields an empty slice, never an error: list consumers
// (search, stats, map, exports) always get a usable collection.
func (s *Store) ListReports(ctx context.Context) []models.Report {
	iter := s.client.Collection(reportsCollection).
		OrderBy("date", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	reports := []models.Report{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			s.logger.Error("failed to list reports", zap.Error(err))
			return []models.Report{}
		}

		var report models.Report
		if err := doc.DataTo(&report); err != nil {
			s.logger.Warn("failed to parse report", zap.String("id", doc.Ref.ID), zap.Error(err))
			continue
		}
		report.ID = doc.Ref.ID
		reports = append(reports, report)
	}

	return reports
}

// GetReport retrieves a single report by its store-assigned id.
func (s *Store) GetReport(ctx context.Context, id string) (*models.Report, error) {
	doc, err := s.client.Collection(reportsCollection).Doc(id).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	var report models.Report
	if err := doc.DataTo(&report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	report.ID = doc.Ref.ID

	return &report, nil
}

// CreateReport materializes a new report: protocol and creation timestamp
// are generated client-side, status starts at Pendente with an empty visit
// history, and Firestore assigns the document id. Returns nil on failure.
func (s *Store) CreateReport(ctx context.Context, form models.ReportForm, images []string) *models.Report {
	report := models.NewReport(form, images, s.now())

	ref, _, err := s.client.Collection(reportsCollection).Add(ctx, report)
	if err != nil {
		s.logger.Error("failed to create report", zap.String("protocol", report.Protocol), zap.Error(err))
		return nil
	}
	report.ID = ref.ID

	return &report
}

// UpdateStatus unconditionally overwrites the status field.
func (s *Store) UpdateStatus(ctx context.Context, id string, status models.Status) bool {
	_, err := s.client.Collection(reportsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: status},
	})
	if err != nil {
		s.logger.Error("failed to update status", zap.String("id", id), zap.Error(err))
		return false
	}
	return true
}

// AddVisit appends a visit note to the report's history using the store's
// set-union primitive, which is safe under concurrent appends. The visit is
// stamped with the current time and the acting operator's identity.
func (s *Store) AddVisit(ctx context.Context, id, text, author string) (models.Visit, bool) {
	visit := models.Visit{
		Date:        s.now().UTC().Format(time.RFC3339),
		Description: text,
		Author:      author,
	}

	_, err := s.client.Collection(reportsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "visits", Value: firestore.ArrayUnion(visit)},
	})
	if err != nil {
		s.logger.Error("failed to add visit", zap.String("id", id), zap.Error(err))
		return models.Visit{}, false
	}
	return visit, true
}

// RemoveVisit deletes the array element exactly equal to visit. Removal is
// by full structural equality: if two visits carry identical content, either
// or both may disappear. Removing a visit that is not present succeeds as a
// no-op.
func (s *Store) RemoveVisit(ctx context.Context, id string, visit models.Visit) bool {
	_, err := s.client.Collection(reportsCollection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "visits", Value: firestore.ArrayRemove(visit)},
	})
	if err != nil {
		s.logger.Error("failed to remove visit", zap.String("id", id), zap.Error(err))
		return false
	}
	return true
}

// DeleteReport removes the document permanently. Image payloads are embedded
// in the document, so there is nothing further to clean up.
func (s *Store) DeleteReport(ctx context.Context, id string) bool {
	_, err := s.client.Collection(reportsCollection).Doc(id).Delete(ctx)
	if err != nil {
		s.logger.Error("failed to delete report", zap.String("id", id), zap.Error(err))
		return false
	}
	return true
}
