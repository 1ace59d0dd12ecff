package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ironsheep/photo-batch-mcp/internal/bitmap"
	"github.com/ironsheep/photo-batch-mcp/internal/dataset"
	"github.com/ironsheep/photo-batch-mcp/internal/export"
	"github.com/ironsheep/photo-batch-mcp/internal/filters"
	"github.com/ironsheep/photo-batch-mcp/internal/pipeline"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_render").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	s.debugf("tools/call %s", params.Name)
	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.debugf("tools/call %s failed: %v", params.Name, err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Resolves the source image from the dataset or from disk
//  4. Calls the appropriate dataset/pipeline/filters/export function
//  5. Returns the result or error
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Dataset Management
	case "image_load":
		return s.handleImageLoad(args)
	case "image_list":
		return s.handleImageList(args)
	case "image_remove":
		return s.handleImageRemove(args)
	case "image_clear":
		return s.handleImageClear(args)
	case "image_select":
		return s.handleImageSelect(args)

	// Adjustments
	case "image_set_params":
		return s.handleImageSetParams(args)
	case "image_reset_params":
		return s.handleImageResetParams(args)
	case "image_dataset_stats":
		return s.handleImageDatasetStats(args)

	// Rendering
	case "image_render":
		return s.handleImageRender(ctx, args)
	case "image_filter":
		return s.handleImageFilter(ctx, args)
	case "image_swirl":
		return s.handleImageSwirl(ctx, args)
	case "image_transform":
		return s.handleImageTransform(args)

	// Color Operations
	case "image_sample_color":
		return s.handleImageSampleColor(ctx, args)
	case "image_dominant_colors":
		return s.handleImageDominantColors(ctx, args)

	// Export
	case "image_export":
		return s.handleImageExport(ctx, args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// ImageResult is the response of tools that produce an image.
type ImageResult struct {
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	MeanLuma float64 `json:"mean_luma"`
	MimeType string  `json:"mime_type"`

	// ImageBase64 is set unless the image was written to OutputPath.
	ImageBase64 string `json:"image_base64,omitempty"`
	OutputPath  string `json:"output_path,omitempty"`
}

// imageResult encodes bm and either embeds it or writes it to outputPath.
func (s *Server) imageResult(bm *bitmap.Bitmap, format, outputPath string) (*ImageResult, error) {
	var (
		data []byte
		mime string
		err  error
	)
	switch strings.ToLower(format) {
	case "", "png":
		data, err = bm.EncodePNG()
		mime = "image/png"
	case "jpeg", "jpg":
		data, err = bm.EncodeJPEG(s.cfg.JPEGQuality)
		mime = "image/jpeg"
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	if err != nil {
		return nil, err
	}

	res := &ImageResult{
		Width:    bm.Width,
		Height:   bm.Height,
		MeanLuma: pipeline.MeanLuma(bm),
		MimeType: mime,
	}
	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", outputPath, err)
		}
		res.OutputPath = outputPath
		return res, nil
	}
	res.ImageBase64 = base64.StdEncoding.EncodeToString(data)
	return res, nil
}

// sourceArgs selects the input image of a tool: a dataset item rendered at
// a view, or a file on disk.
type sourceArgs struct {
	ID   string `json:"id"`
	Path string `json:"path"`
	View string `json:"view"`
}

// load returns the source bitmap. Items default to the full view.
func (s *Server) load(ctx context.Context, a sourceArgs) (*bitmap.Bitmap, error) {
	switch {
	case a.ID != "":
		view := a.View
		if view == "" {
			view = string(dataset.ViewFull)
		}
		return s.lib.Render(ctx, a.ID, dataset.View(view))
	case a.Path != "":
		return bitmap.Open(a.Path, 0, 0)
	default:
		return nil, errors.New("either id or path is required")
	}
}

// === Dataset Management Handlers ===

type imageLoadArgs struct {
	Path  string   `json:"path"`
	Paths []string `json:"paths"`
}

type imageLoadResult struct {
	Items       []dataset.Info `json:"items"`
	Errors      []string       `json:"errors,omitempty"`
	Count       int            `json:"count"`
	DatasetMean float64        `json:"dataset_mean"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	paths := append([]string(nil), a.Paths...)
	if a.Path != "" {
		st, err := os.Stat(a.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open image: %w", err)
		}
		if st.IsDir() {
			found, err := listImages(a.Path)
			if err != nil {
				return nil, err
			}
			if len(found) == 0 {
				return nil, fmt.Errorf("no images found in %s", a.Path)
			}
			paths = append(paths, found...)
		} else {
			paths = append(paths, a.Path)
		}
	}
	if len(paths) == 0 {
		return nil, errors.New("path or paths is required")
	}

	res := &imageLoadResult{Items: []dataset.Info{}}
	for _, p := range paths {
		info, err := s.lib.Add(p)
		if err != nil {
			res.Errors = append(res.Errors, err.Error())
			continue
		}
		res.Items = append(res.Items, info)
	}
	if len(res.Items) == 0 {
		return nil, fmt.Errorf("no images loaded: %s", strings.Join(res.Errors, "; "))
	}
	res.Count = s.lib.Len()
	res.DatasetMean = s.lib.DatasetMean()
	return res, nil
}

// listImages returns the image files directly inside dir, sorted by name.
func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !bitmap.IsImageName(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

type imageListResult struct {
	Items       []dataset.Info  `json:"items"`
	Count       int             `json:"count"`
	Selected    int             `json:"selected"`
	DatasetMean float64         `json:"dataset_mean"`
	PreviewSize int             `json:"preview_size"`
	Base        pipeline.Params `json:"base_params"`
}

func (s *Server) handleImageList(args json.RawMessage) (interface{}, error) {
	items := s.lib.List()
	selected := 0
	for _, it := range items {
		if it.Selected {
			selected++
		}
	}
	return &imageListResult{
		Items:       items,
		Count:       len(items),
		Selected:    selected,
		DatasetMean: s.lib.DatasetMean(),
		PreviewSize: s.lib.PreviewSize(),
		Base:        s.lib.Base(),
	}, nil
}

type imageIDArgs struct {
	ID string `json:"id"`
}

func (s *Server) handleImageRemove(args json.RawMessage) (interface{}, error) {
	var a imageIDArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := s.lib.Remove(a.ID); err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"removed":      a.ID,
		"count":        s.lib.Len(),
		"dataset_mean": s.lib.DatasetMean(),
	}, nil
}

func (s *Server) handleImageClear(args json.RawMessage) (interface{}, error) {
	s.lib.Clear()
	return map[string]interface{}{"count": 0}, nil
}

type imageSelectArgs struct {
	All      *bool    `json:"all"`
	IDs      []string `json:"ids"`
	Selected *bool    `json:"selected"`
	Toggle   string   `json:"toggle"`
	RangeTo  string   `json:"range_to"`
}

func (s *Server) handleImageSelect(args json.RawMessage) (interface{}, error) {
	var a imageSelectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Selected == nil {
		t := true
		a.Selected = &t
	}

	if a.All != nil {
		s.lib.SelectAll(*a.All)
	}
	if len(a.IDs) > 0 {
		if err := s.lib.Select(a.IDs, *a.Selected); err != nil {
			return nil, err
		}
	}
	if a.Toggle != "" {
		if _, err := s.lib.Toggle(a.Toggle); err != nil {
			return nil, err
		}
	}
	if a.RangeTo != "" {
		if err := s.lib.SelectRange(a.RangeTo); err != nil {
			return nil, err
		}
	}

	sel := s.lib.Selected()
	if sel == nil {
		sel = []string{}
	}
	return map[string]interface{}{"selected": sel}, nil
}

// === Adjustment Handlers ===

type imageSetParamsArgs struct {
	ID          string          `json:"id"`
	Scope       string          `json:"scope"`
	Params      *pipeline.Patch `json:"params"`
	PreviewSize int             `json:"preview_size"`
}

type itemParams struct {
	ID     string          `json:"id"`
	Params pipeline.Params `json:"params"`
}

func (s *Server) handleImageSetParams(args json.RawMessage) (interface{}, error) {
	var a imageSetParamsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	if a.PreviewSize != 0 {
		if err := s.lib.SetPreviewSize(a.PreviewSize); err != nil {
			return nil, err
		}
	}

	var ids []string
	switch {
	case a.ID != "":
		ids = []string{a.ID}
	case a.Scope != "":
		scope, err := dataset.ParseScope(a.Scope)
		if err != nil {
			return nil, err
		}
		if ids, err = s.lib.Targets(scope); err != nil {
			return nil, err
		}
	default:
		return map[string]interface{}{"base_params": s.lib.UpdateBase(a.Params)}, nil
	}

	updated := make([]itemParams, 0, len(ids))
	for _, id := range ids {
		p, err := s.lib.UpdateItem(id, a.Params)
		if err != nil {
			return nil, err
		}
		updated = append(updated, itemParams{ID: id, Params: p})
	}
	return map[string]interface{}{"items": updated}, nil
}

func (s *Server) handleImageResetParams(args json.RawMessage) (interface{}, error) {
	var a imageIDArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.ID == "" {
		s.lib.ResetAll()
		return map[string]interface{}{"base_params": s.lib.Base()}, nil
	}
	if err := s.lib.ResetItem(a.ID); err != nil {
		return nil, err
	}
	p, err := s.lib.Resolve(a.ID)
	if err != nil {
		return nil, err
	}
	return itemParams{ID: a.ID, Params: p}, nil
}

type imageDatasetStatsArgs struct {
	Recompute bool `json:"recompute"`
}

type itemStats struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	MeanLuma float64         `json:"mean_luma"`
	Params   pipeline.Params `json:"params"`

	// ExposureEV is the total exposure the item renders with, auto
	// correction included.
	ExposureEV float64 `json:"exposure_ev"`
}

func (s *Server) handleImageDatasetStats(args json.RawMessage) (interface{}, error) {
	var a imageDatasetStatsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var mean float64
	if a.Recompute {
		mean = s.lib.RecomputeMeans()
	} else {
		mean = s.lib.DatasetMean()
	}

	infos := s.lib.List()
	stats := make([]itemStats, 0, len(infos))
	for _, info := range infos {
		p, err := s.lib.Resolve(info.ID)
		if err != nil {
			// removed concurrently
			continue
		}
		auto := pipeline.NewAutoContext(info.MeanLuma, mean, p.Auto)
		stats = append(stats, itemStats{
			ID:         info.ID,
			Name:       info.Name,
			MeanLuma:   info.MeanLuma,
			Params:     p,
			ExposureEV: pipeline.EVTotal(p, auto),
		})
	}
	return map[string]interface{}{
		"dataset_mean": mean,
		"count":        len(stats),
		"items":        stats,
	}, nil
}

// === Rendering Handlers ===

type imageRenderArgs struct {
	ID         string `json:"id"`
	View       string `json:"view"`
	Format     string `json:"format"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleImageRender(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageRenderArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.View == "" {
		a.View = string(dataset.ViewPreview)
	}
	bm, err := s.lib.Render(ctx, a.ID, dataset.View(a.View))
	if err != nil {
		return nil, err
	}
	return s.imageResult(bm, a.Format, a.OutputPath)
}

type imageFilterArgs struct {
	sourceArgs
	filters.Settings
	Threshold  *float64 `json:"threshold"`
	Format     string   `json:"format"`
	OutputPath string   `json:"output_path"`
}

func (s *Server) handleImageFilter(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageFilterArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	a.Settings.Threshold = filters.DefaultThreshold
	if a.Threshold != nil {
		a.Settings.Threshold = *a.Threshold
	}

	src, err := s.load(ctx, a.sourceArgs)
	if err != nil {
		return nil, err
	}
	out, err := filters.Apply(src, a.Settings)
	if err != nil {
		return nil, err
	}
	return s.imageResult(out, a.Format, a.OutputPath)
}

type imageSwirlArgs struct {
	sourceArgs
	Amount     float64 `json:"amount"`
	Format     string  `json:"format"`
	OutputPath string  `json:"output_path"`
}

func (s *Server) handleImageSwirl(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageSwirlArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	src, err := s.load(ctx, a.sourceArgs)
	if err != nil {
		return nil, err
	}
	out, err := filters.Swirl(src, a.Amount)
	if err != nil {
		return nil, err
	}
	return s.imageResult(out, a.Format, a.OutputPath)
}

type imageTransformArgs struct {
	ID string `json:"id"`
	dataset.Op
}

func (s *Server) handleImageTransform(args json.RawMessage) (interface{}, error) {
	var a imageTransformArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.lib.Transform(a.ID, a.Op)
}

// === Color Operation Handlers ===

type imageSampleColorArgs struct {
	sourceArgs
	X int `json:"x"`
	Y int `json:"y"`
}

func (s *Server) handleImageSampleColor(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	bm, err := s.load(ctx, a.sourceArgs)
	if err != nil {
		return nil, err
	}
	return bm.Sample(a.X, a.Y)
}

type imageDominantColorsArgs struct {
	sourceArgs
	Count int `json:"count"`
}

func (s *Server) handleImageDominantColors(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageDominantColorsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Count == 0 {
		a.Count = 5
	}
	bm, err := s.load(ctx, a.sourceArgs)
	if err != nil {
		return nil, err
	}
	colors, err := bm.DominantColors(a.Count)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"colors": colors}, nil
}

// === Export Handlers ===

type imageExportArgs struct {
	Scope     string   `json:"scope"`
	IDs       []string `json:"ids"`
	NameMode  string   `json:"name_mode"`
	Format    string   `json:"format"`
	OutputDir string   `json:"output_dir"`
}

type imageExportResult struct {
	Archived bool     `json:"archived"`
	Count    int      `json:"count"`
	Files    []string `json:"files"`
}

func (s *Server) handleImageExport(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageExportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.OutputDir == "" {
		a.OutputDir = s.cfg.OutputDir
	}
	mode, err := export.ParseNameMode(a.NameMode)
	if err != nil {
		return nil, err
	}

	ids := a.IDs
	if len(ids) == 0 {
		scope, err := dataset.ParseScope(a.Scope)
		if err != nil {
			return nil, err
		}
		if ids, err = s.lib.Targets(scope); err != nil {
			return nil, err
		}
	}

	items, err := s.lib.ExportItems(ids)
	if err != nil {
		return nil, err
	}
	res, err := export.Export(ctx, items, mode, export.Options{
		Workers:     s.cfg.ExportWorkers,
		Format:      export.Format(a.Format),
		JPEGQuality: s.cfg.JPEGQuality,
	})
	if err != nil {
		return nil, err
	}
	paths, err := export.WriteResult(a.OutputDir, res)
	if err != nil {
		return nil, err
	}
	return &imageExportResult{Archived: res.Archived, Count: res.Count, Files: paths}, nil
}
