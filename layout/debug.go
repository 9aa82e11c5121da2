package layout

import (
	"encoding/json"
	"os"
)

// WriteDebugJSON 将各表格的布局结果（列边界、行高、片段坐标）输出为 JSON，便于调试或可视化。
func WriteDebugJSON(results []*Result, path string) error {
	if len(results) == 0 {
		return nil
	}
	data, err := json.MarshalIndent(struct {
		Tables []*Result `json:"tables"`
	}{results}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
