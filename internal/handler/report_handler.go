package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"html"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	apperrors "github.com/yourusername/dailyquiz-api/internal/pkg/errors"
	"github.com/yourusername/dailyquiz-api/internal/service"
)

// ReportHandler обрабатывает запросы отчётов для преподавателей
type ReportHandler struct {
	reportService *service.ReportService
	emailService  service.EmailService
}

// NewReportHandler создает новый обработчик отчётов
func NewReportHandler(reportService *service.ReportService, emailService service.EmailService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		emailService:  emailService,
	}
}

// GetPerformanceReport возвращает отчёт посещаемости и успеваемости
// GET /api/reports/performance?week=2025-W38&class=10A
func (h *ReportHandler) GetPerformanceReport(c *gin.Context) {
	report, err := h.reportService.PerformanceReport(c.Query("week"), c.Query("class"), time.Now())
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ExportPerformanceReport экспортирует отчёт в CSV или Excel формате
// GET /api/reports/performance/export?week=2025-W38&class=10A&format=csv|xlsx
func (h *ReportHandler) ExportPerformanceReport(c *gin.Context) {
	report, err := h.reportService.PerformanceReport(c.Query("week"), c.Query("class"), time.Now())
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	filename := fmt.Sprintf("attendance_%s", report.WeekID)

	switch c.DefaultQuery("format", "csv") {
	case "xlsx":
		h.exportXLSX(c, report, filename)
	default:
		h.exportCSV(c, report, filename)
	}
}

// exportCSV экспортирует отчёт в CSV с правильным экранированием спецсимволов
func (h *ReportHandler) exportCSV(c *gin.Context, report *service.PerformanceReport, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	// Используем encoding/csv для правильного экранирования запятых/кавычек
	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(reportHeader(report.Dates))

	for _, st := range report.Students {
		row := []string{
			sanitizeForExcel(st.Student),
			sanitizeForExcel(st.Class),
		}
		for _, mark := range st.Attendance {
			row = append(row, attendanceLabel(mark.Attended))
		}
		row = append(row, strconv.Itoa(st.TotalMarks))
		writer.Write(row)
	}
}

// exportXLSX экспортирует отчёт в Excel с использованием StreamWriter
func (h *ReportHandler) exportXLSX(c *gin.Context, report *service.PerformanceReport, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Посещаемость"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[ReportHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	header := reportHeader(report.Dates)
	headerRow := make([]interface{}, len(header))
	for i, hcell := range header {
		headerRow[i] = hcell
	}
	if err := sw.SetRow("A1", headerRow); err != nil {
		log.Printf("[ReportHandler] Ошибка записи заголовков: %v", err)
	}

	for i, st := range report.Students {
		rowNum := i + 2 // Начинаем с 2 строки (1 - заголовки)
		cell := fmt.Sprintf("A%d", rowNum)

		row := []interface{}{sanitizeForExcel(st.Student), sanitizeForExcel(st.Class)}
		for _, mark := range st.Attendance {
			row = append(row, attendanceLabel(mark.Attended))
		}
		row = append(row, st.TotalMarks)

		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[ReportHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[ReportHandler] Ошибка при Flush: %v", err)
	}

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[ReportHandler] Ошибка записи Excel в response: %v", err)
	}
}

// EmailReportRequest представляет запрос на отправку сводки отчёта
type EmailReportRequest struct {
	Email string `json:"email" binding:"required,email"`
	Week  string `json:"week" binding:"omitempty"`
	Class string `json:"class" binding:"omitempty"`
}

// EmailPerformanceReport отправляет краткую сводку отчёта на почту
// POST /api/reports/performance/email
func (h *ReportHandler) EmailPerformanceReport(c *gin.Context) {
	var req EmailReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reportService.PerformanceReport(req.Week, req.Class, time.Now())
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	if err := h.emailService.SendReportSummary(c.Request.Context(), req.Email, report.WeekID, reportSummaryHTML(report)); err != nil {
		log.Printf("[ReportHandler] Ошибка отправки сводки на %s: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send report email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// reportHeader строит строку заголовков: студент, группа, даты недели, сумма баллов
func reportHeader(dates []string) []string {
	header := []string{"Студент", "Группа"}
	header = append(header, dates...)
	return append(header, "Сумма баллов")
}

// attendanceLabel переводит отметку посещаемости в текст ячейки
func attendanceLabel(attended bool) string {
	if attended {
		return "Да"
	}
	return "Нет"
}

// reportSummaryHTML строит короткое HTML-письмо со сводкой недели
func reportSummaryHTML(report *service.PerformanceReport) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<h2>Сводка за неделю %s</h2>", html.EscapeString(report.WeekID)))
	b.WriteString("<ul>")
	b.WriteString(fmt.Sprintf("<li>Всего студентов: %d</li>", report.TotalStudents))
	b.WriteString(fmt.Sprintf("<li>Прошли сегодня: %d</li>", report.CompletedToday))
	b.WriteString(fmt.Sprintf("<li>Пропустили сегодня: %d</li>", report.MissedToday))
	b.WriteString(fmt.Sprintf("<li>Средний результат: %d%%</li>", report.AveragePercentage))
	b.WriteString("</ul>")
	return b.String()
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}

// handleReportError преобразует ошибки сервиса в HTTP-ответы
func (h *ReportHandler) handleReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
