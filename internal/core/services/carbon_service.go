package services

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"path"
	"strconv"
	"time"

	"washlab-backend/internal/adapters/persistence/models"
	"washlab-backend/internal/adapters/persistence/repositories"
	"washlab-backend/internal/core/domain"

	"gorm.io/gorm"
)

// points per satisfied readiness criterion
const criterionPoints = 20

// CarbonService handles carbon-credit readiness business logic
type CarbonService struct {
	carbonRepo repositories.CarbonRepository
	assetRepo  repositories.AssetRepository
	httpClient *http.Client
}

// NewCarbonService creates a new carbon service
func NewCarbonService(carbonRepo repositories.CarbonRepository, assetRepo repositories.AssetRepository) *CarbonService {
	return &CarbonService{
		carbonRepo: carbonRepo,
		assetRepo:  assetRepo,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// CreateCarbonPeriodInput represents carbon period creation input
type CreateCarbonPeriodInput struct {
	Name      string    `json:"name" validate:"required"`
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
}

// SaveReadinessInput represents a readiness checklist submission
type SaveReadinessInput struct {
	AssetID        uint                      `json:"assetId" validate:"required"`
	CarbonPeriodID uint                      `json:"carbonPeriodId" validate:"required"`
	Checklist      models.ReadinessChecklist `json:"checklist"`
	Comments       string                    `json:"comments"`
}

// ReadinessReport is the per-period readiness rollup
type ReadinessReport struct {
	Records      []*models.CarbonReadiness `json:"records"`
	AverageScore float64                   `json:"averageScore"`
}

// Score applies the five-criteria rubric: 20 points each for a defined
// project boundary, a water-quality pass rate of at least 90%, at least 10
// hygiene sessions, a diesel share under 10%, and at least 5 baseline
// surveys.
func Score(c models.ReadinessChecklist) int {
	score := 0
	if c.ProjectBoundary {
		score += criterionPoints
	}
	if c.WaterQuality >= 90 {
		score += criterionPoints
	}
	if c.HygieneSessions >= 10 {
		score += criterionPoints
	}
	if c.DieselShare < 10 {
		score += criterionPoints
	}
	if c.BaselineSurveys >= 5 {
		score += criterionPoints
	}
	return score
}

// CreatePeriod creates a carbon period
func (s *CarbonService) CreatePeriod(ctx context.Context, input *CreateCarbonPeriodInput) (*models.CarbonPeriod, error) {
	if input.Name == "" || input.StartDate.IsZero() || input.EndDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if !input.StartDate.Before(input.EndDate) {
		return nil, domain.ErrInvalidInput
	}

	period := &models.CarbonPeriod{
		Name:      input.Name,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Status:    "active",
	}
	if err := s.carbonRepo.CreatePeriod(ctx, period); err != nil {
		return nil, err
	}

	log.Printf("✅ Carbon period created: %s", period.Name)
	return period, nil
}

// ListPeriods lists carbon periods
func (s *CarbonService) ListPeriods(ctx context.Context) ([]*models.CarbonPeriod, error) {
	return s.carbonRepo.ListPeriods(ctx)
}

// GetPeriod gets a carbon period with documents
func (s *CarbonService) GetPeriod(ctx context.Context, id uint) (*models.CarbonPeriod, error) {
	period, err := s.carbonRepo.GetPeriodByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPeriodNotFound
		}
		return nil, err
	}
	return period, nil
}

// SaveReadiness records or replaces one asset's checklist for a period.
// The score is always derived server-side.
func (s *CarbonService) SaveReadiness(ctx context.Context, input *SaveReadinessInput) (*models.CarbonReadiness, error) {
	if input.AssetID == 0 || input.CarbonPeriodID == 0 {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.assetRepo.GetByID(ctx, input.AssetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}
	if _, err := s.carbonRepo.GetPeriodByID(ctx, input.CarbonPeriodID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPeriodNotFound
		}
		return nil, err
	}

	readiness, err := s.carbonRepo.GetReadiness(ctx, input.AssetID, input.CarbonPeriodID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		readiness = &models.CarbonReadiness{
			AssetID:        input.AssetID,
			CarbonPeriodID: input.CarbonPeriodID,
		}
	}

	readiness.Checklist = input.Checklist
	readiness.Comments = input.Comments
	readiness.ReadinessScore = Score(input.Checklist)

	if err := s.carbonRepo.SaveReadiness(ctx, readiness); err != nil {
		return nil, err
	}
	return readiness, nil
}

// Readiness returns all readiness records for a period with the network
// average score
func (s *CarbonService) Readiness(ctx context.Context, periodID uint) (*ReadinessReport, error) {
	if _, err := s.carbonRepo.GetPeriodByID(ctx, periodID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPeriodNotFound
		}
		return nil, err
	}

	records, err := s.carbonRepo.ListReadinessByPeriod(ctx, periodID)
	if err != nil {
		return nil, err
	}

	report := &ReadinessReport{Records: records}
	for _, r := range records {
		report.AverageScore += float64(r.ReadinessScore)
	}
	if len(records) > 0 {
		report.AverageScore /= float64(len(records))
	}

	return report, nil
}

// PinDocument appends an evidence document to a period
func (s *CarbonService) PinDocument(ctx context.Context, periodID uint, fileURL, description string) (*models.CarbonDocument, error) {
	if fileURL == "" {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.carbonRepo.GetPeriodByID(ctx, periodID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPeriodNotFound
		}
		return nil, err
	}

	doc := &models.CarbonDocument{
		CarbonPeriodID: periodID,
		URL:            fileURL,
		Description:    description,
		PinnedAt:       time.Now(),
	}
	if err := s.carbonRepo.AddDocument(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ExportEvidence builds a ZIP archive with the period's readiness records as
// CSV plus every pinned evidence file it can fetch. Unreachable files are
// skipped, not fatal.
func (s *CarbonService) ExportEvidence(ctx context.Context, periodID uint) ([]byte, string, error) {
	period, err := s.GetPeriod(ctx, periodID)
	if err != nil {
		return nil, "", err
	}

	records, err := s.carbonRepo.ListReadinessByPeriod(ctx, periodID)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	if err := writeReadinessCSV(zw, records); err != nil {
		return nil, "", err
	}

	for _, doc := range period.Documents {
		if err := s.addRemoteFile(ctx, zw, doc.URL); err != nil {
			log.Printf("⚠️ Evidence download skipped (%s): %v", doc.URL, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("carbon-evidence-%s.zip", period.Name)
	return buf.Bytes(), filename, nil
}

// writeReadinessCSV adds readiness.csv to the archive.
func writeReadinessCSV(zw *zip.Writer, records []*models.CarbonReadiness) error {
	w, err := zw.Create("readiness.csv")
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{
		"asset_id", "site_name", "project_boundary", "water_quality_pct",
		"hygiene_sessions", "diesel_share_pct", "baseline_surveys",
		"readiness_score", "comments",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		siteName := ""
		if r.Asset != nil {
			siteName = r.Asset.SiteName
		}
		row := []string{
			strconv.FormatUint(uint64(r.AssetID), 10),
			siteName,
			strconv.FormatBool(r.Checklist.ProjectBoundary),
			strconv.FormatFloat(r.Checklist.WaterQuality, 'f', 1, 64),
			strconv.Itoa(r.Checklist.HygieneSessions),
			strconv.FormatFloat(r.Checklist.DieselShare, 'f', 1, 64),
			strconv.Itoa(r.Checklist.BaselineSurveys),
			strconv.Itoa(r.ReadinessScore),
			r.Comments,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// addRemoteFile streams a remote evidence file into the archive under
// evidence/.
func (s *CarbonService) addRemoteFile(ctx context.Context, zw *zip.Writer, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	name := path.Base(url)
	if name == "" || name == "." || name == "/" {
		name = "evidence.bin"
	}

	w, err := zw.Create("evidence/" + name)
	if err != nil {
		return err
	}
	_, err = io.Copy(w, resp.Body)
	return err
}
