package repository

import (
	"github.com/fadilmartias/skill-assessment/internal/model"
	"gorm.io/gorm"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db}
}

func (r *ReportRepository) CreateReport(report *model.AssessmentReport) error {
	return r.db.Create(report).Error
}

func (r *ReportRepository) FindReportByID(reportID string) (*model.AssessmentReport, error) {
	var report model.AssessmentReport
	err := r.db.First(&report, "report_id = ?", reportID).Error
	return &report, err
}

func (r *ReportRepository) ListReports(page, pageSize int) ([]model.AssessmentReport, int64, error) {
	var reports []model.AssessmentReport
	var total int64

	if err := r.db.Model(&model.AssessmentReport{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&reports).Error
	return reports, total, err
}
