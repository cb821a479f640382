package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Anilrajput6441/Gema-Assignment/internal/models"
	"github.com/Anilrajput6441/Gema-Assignment/internal/scoring"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Exams"

var exportHeaders = []string{
	"User ID", "Student Name", "Email", "Mobile", "Exam ID", "Exam", "Test Date",
	"Overall Score", "Max Score", "Percentage", "Pronunciation", "Fluency",
	"Vocabulary", "Grammar", "Overall Feedback",
}

type exportService struct {
	users   UserService
	scoring ScoringService
	logger  *ServiceLogger
}

func NewExportService(users UserService, scoringService ScoringService, logger *slog.Logger) ExportService {
	return &exportService{
		users:   users,
		scoring: scoringService,
		logger:  NewServiceLogger(logger, LogConfig{Service: "speaking-report", Component: "export"}),
	}
}

func (s *exportService) ExportUsers(ctx context.Context) ([]byte, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	return s.writeWorkbook(users)
}

func (s *exportService) ExportUser(ctx context.Context, userID string) ([]byte, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.writeWorkbook([]*models.User{user})
}

// writeWorkbook renders one row per exam; users without exams get one row
// with the exam columns left blank.
func (s *exportService) writeWorkbook(users []*models.User) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	for i, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	row := 2
	for _, user := range users {
		if len(user.Exams) == 0 {
			if err := s.writeRow(f, row, userColumns(user)); err != nil {
				return nil, err
			}
			row++
			continue
		}
		for _, exam := range user.Exams {
			if err := s.writeRow(f, row, append(userColumns(user), s.examColumns(exam)...)); err != nil {
				return nil, err
			}
			row++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Logger().Info("Exported workbook", "users", len(users), "rows", row-2)
	return buf.Bytes(), nil
}

func (s *exportService) writeRow(f *excelize.File, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

func userColumns(u *models.User) []interface{} {
	return []interface{}{u.UserID, u.StudentName, u.Email, u.Mobile}
}

func (s *exportService) examColumns(e models.Exam) []interface{} {
	cols := []interface{}{e.ID, string(e.ExamType), e.TestDate.Format("2006-01-02")}

	cfg, err := scoring.Lookup(e.ExamType)
	if err != nil {
		return append(cols, e.OverallScore, "", "",
			e.Skills.Pronunciation, e.Skills.Fluency, e.Skills.Vocabulary, e.Skills.Grammar, "")
	}

	pct := scoring.Percentage(e.OverallScore, cfg.MaxScore)
	tier := s.scoring.FeedbackFunc()(e.OverallScore, cfg.MaxScore)
	return append(cols,
		e.OverallScore, cfg.MaxScore, fmt.Sprintf("%.1f%%", pct),
		e.Skills.Pronunciation, e.Skills.Fluency, e.Skills.Vocabulary, e.Skills.Grammar,
		tier.Message(),
	)
}
