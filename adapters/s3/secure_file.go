package s3

// SecureMIMETypesExtension 定義允許上傳的掃描檔類型及其對應的副檔名
// 報告書掃描檔接受常見的圖片格式與 PDF
var SecureMIMETypesExtension = map[string]string{
	"image/jpeg":      "jpeg",
	"image/png":       "png",
	"image/gif":       "gif",
	"image/tiff":      "tiff",
	"image/webp":      "webp",
	"application/pdf": "pdf",
}

// CheckSecureScanAndGetExtension 檢查給定的 MIME 類型是否為允許的掃描檔類型，並返回對應的副檔名
func CheckSecureScanAndGetExtension(mimeType string) (bool, string) {
	ext, ok := SecureMIMETypesExtension[mimeType]
	return ok, ext
}
