package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/tossbridge/engine"
)

// HandleBrowser lists the engine's live handles in a sortable, filterable table and shows
// the details of the selected one.
type HandleBrowser struct {
	engine *engine.Engine

	rows          []engine.HandleInfo
	builtAt       int64
	sortColumn    int
	sortAscending bool

	filterText  string
	selected    engine.Handle
	perPage     int
	currentPage int
}

func NewHandleBrowser(e *engine.Engine, perPage int) *HandleBrowser {
	return &HandleBrowser{
		engine:        e,
		builtAt:       -1,
		sortAscending: true,
		perPage:       perPage,
	}
}

func (hb *HandleBrowser) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(520, 360), imgui.CondOnce)

	if !imgui.BeginV("Handle Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	hb.refresh()

	imgui.InputTextWithHint("##search", "Search...", &hb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		hb.filterText = ""
		hb.currentPage = 0
	}

	filtered := hb.filtered()

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("HandleTable", 5, tableFlags, imgui.NewVec2(0, 220), 0) {
		imgui.TableSetupColumn("Handle")
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("Type")
		imgui.TableSetupColumn("Parent")
		imgui.TableSetupColumn("State")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			hb.sortColumn = int(spec.ColumnIndex())
			hb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortHandles(hb.rows, hb.sortColumn, hb.sortAscending)
			filtered = hb.filtered()
			sortSpecs.SetSpecsDirty(false)
		}

		start, end := pageBounds(len(filtered), hb.currentPage, hb.perPage)
		for _, row := range filtered[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(row.Handle.String(), hb.selected == row.Handle, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				hb.selected = row.Handle
			}

			imgui.TableNextColumn()
			imgui.Text(row.Kind.String())
			imgui.TableNextColumn()
			imgui.Text(row.TypeName)
			imgui.TableNextColumn()
			imgui.Text(parentLabel(row.Parent))
			imgui.TableNextColumn()
			imgui.Text(stateLabel(row))
		}

		imgui.EndTable()
	}

	if len(filtered) > hb.perPage {
		totalPages := (len(filtered) + hb.perPage - 1) / hb.perPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d handles)", hb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && hb.currentPage > 0 {
			hb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && hb.currentPage < totalPages-1 {
			hb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d handles", len(filtered)))
	}

	imgui.Separator()
	hb.renderSelected()

	imgui.End()
}

func (hb *HandleBrowser) renderSelected() {
	info, ok := hb.engine.Info(hb.selected)
	if !ok {
		imgui.Text("No handle selected")
		return
	}

	imgui.Text(fmt.Sprintf("Handle: %s (slot %d, generation %d)", info.Handle, info.Handle.Index(), info.Handle.Generation()))
	imgui.Text(fmt.Sprintf("%s %q", info.Kind, info.TypeName))
	imgui.Text(fmt.Sprintf("Callbacks registered: %t", info.Registered))
	imgui.Text(fmt.Sprintf("Created: %t", info.Created))

	if info.Children > 0 && imgui.TreeNodeStr(fmt.Sprintf("Children (%d)", info.Children)) {
		for _, child := range hb.engine.Children(info.Handle) {
			if childInfo, ok := hb.engine.Info(child); ok {
				imgui.BulletText(fmt.Sprintf("%s %s", child, childInfo.TypeName))
			}
		}
		imgui.TreePop()
	}

	if imgui.Button("Destroy") && hb.engine.DestroyNativeHandle(info.Handle) == nil {
		hb.selected = engine.InvalidHandle
	}
}

// refresh rebuilds the row cache once per engine frame.
func (hb *HandleBrowser) refresh() {
	frames := hb.engine.SchedulerStats().Frames
	if frames == hb.builtAt && hb.rows != nil {
		return
	}
	hb.builtAt = frames

	hb.rows = hb.rows[:0]
	for info := range hb.engine.Handles() {
		hb.rows = append(hb.rows, info)
	}
	sortHandles(hb.rows, hb.sortColumn, hb.sortAscending)
}

func (hb *HandleBrowser) filtered() []engine.HandleInfo {
	rows := filterHandles(hb.rows, hb.filterText)
	if hb.currentPage*hb.perPage >= len(rows) {
		hb.currentPage = 0
	}
	return rows
}

// Selected returns the selected handle, or engine.InvalidHandle.
func (hb *HandleBrowser) Selected() engine.Handle {
	return hb.selected
}

func sortHandles(rows []engine.HandleInfo, column int, ascending bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		var less bool

		switch column {
		case 1:
			less = a.Kind < b.Kind
		case 2:
			less = a.TypeName < b.TypeName
		case 3:
			less = a.Parent < b.Parent
		case 4:
			less = stateLabel(a) < stateLabel(b)
		default:
			less = a.Handle.Index() < b.Handle.Index()
		}

		if !ascending {
			return !less
		}
		return less
	})
}

func filterHandles(rows []engine.HandleInfo, text string) []engine.HandleInfo {
	if text == "" {
		return rows
	}

	needle := strings.ToLower(text)
	filtered := make([]engine.HandleInfo, 0, len(rows))
	for _, row := range rows {
		haystack := strings.ToLower(strings.Join([]string{
			row.Handle.String(),
			row.Kind.String(),
			row.TypeName,
			stateLabel(row),
		}, " "))
		if strings.Contains(haystack, needle) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// pageBounds clamps page to the rows available and returns its slice bounds.
func pageBounds(total, page, perPage int) (int, int) {
	start := page * perPage
	if start >= total {
		start = 0
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return start, end
}

func parentLabel(h engine.Handle) string {
	if !h.Valid() {
		return "-"
	}
	return h.String()
}

func stateLabel(info engine.HandleInfo) string {
	switch {
	case info.Kind == engine.KindGameObject:
		return "owner"
	case info.Created:
		return "running"
	case info.Registered:
		return "pending create"
	default:
		return "unregistered"
	}
}
