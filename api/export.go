package api

import (
	"fmt"
	"net/http"
	"time"

	"suito/models"
	"suito/service"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const (
	sheetDailyRecords = "每日记录"
	sheetTransactions = "交易明细"
	exportTimeLayout  = "2006-01-02 15:04:05"
)

// ExportHandler 导出处理器
type ExportHandler struct {
	svc *service.LedgerService
}

// NewExportHandler 创建导出处理器
func NewExportHandler(svc *service.LedgerService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

// ExportJSON 导出完整数据为 JSON 备份
// @Summary 导出 JSON
// @Description 与客户端导出格式一致，可直接用于 /api/import
// @Tags 导出
// @Produce json
// @Success 200 {object} models.ExportData
// @Failure 500 {object} Response
// @Router /api/export/json [get]
func (h *ExportHandler) ExportJSON(c *gin.Context) {
	ledger, now, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		InternalError(c, err, "读取数据失败")
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+exportFilename(now, "json"))
	c.JSON(http.StatusOK, models.ExportData{
		ExportDate:   now,
		DailyRecords: ledger.DailyRecords,
		Transactions: ledger.Transactions,
	})
}

// ExportXLSX 导出为 Excel
// @Summary 导出 Excel
// @Description 两个工作表：每日记录（含当日入金、出金、余额）与交易明细
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "xlsx 文件"
// @Failure 500 {object} Response
// @Router /api/export/xlsx [get]
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	ledger, now, err := h.svc.Snapshot(c.Request.Context())
	if err != nil {
		InternalError(c, err, "读取数据失败")
		return
	}

	f, err := buildWorkbook(ledger)
	if err != nil {
		InternalError(c, err, "生成 Excel 失败")
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+exportFilename(now, "xlsx"))
	if err := f.Write(c.Writer); err != nil {
		InternalError(c, err, "导出失败")
	}
}

func buildWorkbook(ledger models.Ledger) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := fillWorkbook(f, ledger); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func fillWorkbook(f *excelize.File, ledger models.Ledger) error {
	if err := f.SetSheetName("Sheet1", sheetDailyRecords); err != nil {
		return err
	}
	if _, err := f.NewSheet(sheetTransactions); err != nil {
		return err
	}

	// 表头样式
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	header := []interface{}{"日期", "起始余额", "已设置余额", "入金", "出金", "余额", "笔数", "创建时间"}
	if err := f.SetSheetRow(sheetDailyRecords, "A1", &header); err != nil {
		return err
	}
	f.SetCellStyle(sheetDailyRecords, "A1", "H1", headerStyle)
	for i := range ledger.DailyRecords {
		r := ledger.DailyRecords[i]
		s := models.Summarize(r.Date, &r, ledger.Transactions)
		row := []interface{}{
			r.Date,
			r.StartingBalance,
			yesNo(r.DidSetStartingBalance),
			s.TotalIncome,
			s.TotalExpense,
			s.Balance,
			s.TransactionCount,
			r.CreatedAt.Local().Format(exportTimeLayout),
		}
		if err := f.SetSheetRow(sheetDailyRecords, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}

	header = []interface{}{"ID", "日期", "类型", "金额", "备注", "有图片", "创建时间", "更新时间"}
	if err := f.SetSheetRow(sheetTransactions, "A1", &header); err != nil {
		return err
	}
	f.SetCellStyle(sheetTransactions, "A1", "H1", headerStyle)
	for i, tx := range ledger.Transactions {
		typeText := "出金"
		if tx.IsIncome() {
			typeText = "入金"
		}
		updated := ""
		if tx.UpdatedAt != nil {
			updated = tx.UpdatedAt.Local().Format(exportTimeLayout)
		}
		row := []interface{}{
			tx.ID,
			tx.Date,
			typeText,
			tx.Amount,
			tx.Comment,
			yesNo(tx.ImageData != ""),
			tx.CreatedAt.Local().Format(exportTimeLayout),
			updated,
		}
		if err := f.SetSheetRow(sheetTransactions, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}

	f.SetColWidth(sheetDailyRecords, "A", "H", 14)
	f.SetColWidth(sheetTransactions, "A", "A", 38)
	f.SetColWidth(sheetTransactions, "E", "E", 30)
	return nil
}

func yesNo(b bool) string {
	if b {
		return "是"
	}
	return "否"
}

func exportFilename(now time.Time, ext string) string {
	return fmt.Sprintf("suito-export-%s.%s", now.Format(models.DateLayout), ext)
}
