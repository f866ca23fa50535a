package outbound

import (
	"encoding/json"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"swout/catalog"
	"swout/config"
	"swout/export"
	"swout/mapping"
	"swout/model"
	"swout/parsers"
	"swout/splitter"
)

func writeJsonError(w http.ResponseWriter, message string, statusCode int) {
	log.Println("Error response:", message)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// runResult は1回の生成処理の結果と診断情報です。
type runResult struct {
	Lines            []model.OutputLine `json:"lines"`
	OrderCount       int                `json:"orderCount"`
	UnresolvedOrders int                `json:"unresolvedOrders"`
	SkippedMappings  []string           `json:"skippedMappings"`
}

// UploadOutboundHandler は注文表とキーワード表を受け取り、
// 生成した出庫表をファイル（xlsx / csv）として返します。
func UploadOutboundHandler(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runID := uuid.NewString()

		result, err := processUpload(r, cat, runID)
		if err != nil {
			writeJsonError(w, err.Error(), http.StatusBadRequest)
			return
		}

		format := strings.ToLower(r.FormValue("format"))
		if format == "" {
			format = config.GetConfig().DefaultFormat
		}

		stamp := time.Now().Format("20060102")
		switch format {
		case "csv":
			data := export.WriteCSV(result.Lines)
			filename := fmt.Sprintf("出庫_%s_%s.csv", stamp, runID[:8])
			w.Header().Set("Content-Type", "text/csv;charset=utf-8")
			w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
			w.Write(data)
		case "xlsx":
			data, err := export.WriteXLSX(result.Lines)
			if err != nil {
				writeJsonError(w, "出庫表の生成に失敗: "+err.Error(), http.StatusInternalServerError)
				return
			}
			filename := fmt.Sprintf("出庫_%s_%s.xlsx", stamp, runID[:8])
			w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
			w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
			w.Write(data)
		default:
			writeJsonError(w, "未対応の出力形式です: "+format, http.StatusBadRequest)
		}
	}
}

// PreviewOutboundHandler は出庫表を生成して JSON で返します（画面確認用）。
func PreviewOutboundHandler(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runID := uuid.NewString()

		result, err := processUpload(r, cat, runID)
		if err != nil {
			writeJsonError(w, err.Error(), http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}

// processUpload はアップロードされた注文表とキーワード表から出庫表を組み立てます。
// キーワード表が1つも添付されていない場合は設定のフォルダから補完します。
func processUpload(r *http.Request, cat *catalog.Catalog, runID string) (*runResult, error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return nil, fmt.Errorf("File upload error: %w", err)
	}
	defer r.MultipartForm.RemoveAll()

	ordersFiles := r.MultipartForm.File["orders"]
	if len(ordersFiles) == 0 {
		return nil, fmt.Errorf("注文ファイルが添付されていません")
	}

	orders, err := parseOrdersFile(ordersFiles[0])
	if err != nil {
		return nil, err
	}

	sources := parseMappingFiles(r.MultipartForm.File["mappings"])
	if len(sources) == 0 {
		if folder := config.GetConfig().MappingFolderPath; folder != "" {
			sources = loadMappingFolder(folder)
		}
	}

	registry := mapping.NewRegistry()
	skipped := registry.Load(sources)

	unresolved := 0
	for _, o := range orders {
		if _, ok := cat.Classify(o.Title); !ok {
			unresolved++
		}
	}

	lines := splitter.New(cat, registry).Run(orders)
	log.Printf("run %s: 注文 %d件 → 出庫 %d行 (機種未判定 %d件)", runID, len(orders), len(lines), unresolved)

	return &runResult{
		Lines:            lines,
		OrderCount:       len(orders),
		UnresolvedOrders: unresolved,
		SkippedMappings:  skipped,
	}, nil
}

func parseOrdersFile(fileHeader *multipart.FileHeader) ([]model.Order, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("注文ファイルのオープンに失敗: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".xlsx", ".xls", ".xlsm":
		return parsers.ParseOrdersXLSX(file)
	default:
		return parsers.ParseOrdersCSV(file)
	}
}

// parseMappingFiles は添付されたキーワード表を1ファイルずつ解析します。
// 解析に失敗したファイルは WARN を出してスキップし、処理を続行します。
func parseMappingFiles(fileHeaders []*multipart.FileHeader) []model.MappingSource {
	var sources []model.MappingSource
	for _, fileHeader := range fileHeaders {
		file, err := fileHeader.Open()
		if err != nil {
			log.Printf("WARN: キーワード表 %s のオープンに失敗 (スキップ): %v", fileHeader.Filename, err)
			continue
		}
		rows, err := parsers.ParseMappingCSV(file)
		file.Close()
		if err != nil {
			log.Printf("WARN: キーワード表 %s の解析に失敗 (スキップ): %v", fileHeader.Filename, err)
			continue
		}
		sources = append(sources, model.MappingSource{
			Name: stem(fileHeader.Filename),
			Rows: rows,
		})
	}
	return sources
}

// loadMappingFolder は設定されたフォルダ内の *.csv をキーワード表として読み込みます。
func loadMappingFolder(folder string) []model.MappingSource {
	entries, err := os.ReadDir(folder)
	if err != nil {
		log.Printf("WARN: キーワード表フォルダの読み取りに失敗: %v", err)
		return nil
	}

	var sources []model.MappingSource
	for _, entry := range entries {
		if entry.IsDir() || strings.ToLower(filepath.Ext(entry.Name())) != ".csv" {
			continue
		}
		path := filepath.Join(folder, entry.Name())
		file, err := os.Open(path)
		if err != nil {
			log.Printf("WARN: キーワード表 %s のオープンに失敗 (スキップ): %v", path, err)
			continue
		}
		rows, err := parsers.ParseMappingCSV(file)
		file.Close()
		if err != nil {
			log.Printf("WARN: キーワード表 %s の解析に失敗 (スキップ): %v", path, err)
			continue
		}
		sources = append(sources, model.MappingSource{
			Name: stem(entry.Name()),
			Rows: rows,
		})
	}
	return sources
}

func stem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
