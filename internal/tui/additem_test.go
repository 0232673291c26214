package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/carbonlog/carbon/internal/api"
	"github.com/carbonlog/carbon/internal/tracker"
)

var kitchenItems = []tracker.ReferenceItem{
	{Name: "Fridge", Coefficient: 0.15, HasCoefficient: true},
	{Name: "Kettle", Coefficient: 2.2, HasCoefficient: true},
}

// openKitchen walks Appliance -> Kitchen and waits for the form
func openKitchen(t *testing.T, fb *fakeBackend) AppModel {
	t.Helper()
	if fb.items == nil {
		fb.items = map[string][]tracker.ReferenceItem{"Kitchen": kitchenItems}
	}
	m := newTestApp(t, fb, ScreenAddItem)
	// Appliance is first; Kitchen is the third appliance type
	return press(t, m, keyEnter, keyDown, keyDown, keyEnter)
}

func TestAddItem_CategoryShowsItemTypes(t *testing.T) {
	m := newTestApp(t, &fakeBackend{}, ScreenAddItem)

	if got := m.AddItemModel.buttons.Style; got != tracker.StylePrimary {
		t.Errorf("initial style = %v, want %v", got, tracker.StylePrimary)
	}

	m = press(t, m, keyEnter)

	a := m.AddItemModel
	if a.state.Mode != tracker.ModeAppliance {
		t.Errorf("Mode = %v, want %v", a.state.Mode, tracker.ModeAppliance)
	}
	if !a.buttons.Back || a.buttons.Style != tracker.StyleSecondary {
		t.Errorf("buttons = %+v, want item types with back control", a.buttons)
	}
	if a.buttons.LabelAt(0) != "Entertainment" {
		t.Errorf("first item type = %q, want Entertainment", a.buttons.LabelAt(0))
	}
	if a.form != nil {
		t.Error("form present before an item type was chosen")
	}
}

func TestAddItem_LoadsForm(t *testing.T) {
	fb := &fakeBackend{}
	m := openKitchen(t, fb)

	if len(fb.lookups) != 1 || fb.lookups[0] != "appliance/Kitchen" {
		t.Fatalf("lookups = %v, want [appliance/Kitchen]", fb.lookups)
	}

	a := m.AddItemModel
	if a.loading {
		t.Error("still loading after the response")
	}
	if a.form == nil || !a.form.HasSelect() {
		t.Fatalf("form = %+v, want options", a.form)
	}
	if a.focus != focusSelect {
		t.Errorf("focus = %v, want select", a.focus)
	}
	if got := a.form.Value(tracker.FieldWattage); got != "0.15" {
		t.Errorf("wattage = %q, want 0.15", got)
	}
	if got := a.form.Value(tracker.FieldLogTime); got != "2024-03-09 14:05:07" {
		t.Errorf("logTime = %q, want 2024-03-09 14:05:07", got)
	}
	if len(a.inputs) != 2 {
		t.Errorf("editable inputs = %d, want 2 (usage time, wattage)", len(a.inputs))
	}
	if view := m.View(); !strings.Contains(view, "You selected: Kitchen") {
		t.Error("view missing selection heading")
	}
}

func TestAddItem_SelectChangeRegeneratesFields(t *testing.T) {
	m := openKitchen(t, &fakeBackend{})

	m = press(t, m, keyTab, typeText("3"))
	if got := m.AddItemModel.form.Value(tracker.FieldUsageTime); got != "3" {
		t.Fatalf("usageTime = %q, want 3", got)
	}

	// back to the select control, then pick Kettle
	m = press(t, m, keyTab, keyTab, keyRight)

	f := m.AddItemModel.form
	if opt, _ := f.SelectedOption(); opt.Value != "Kettle" {
		t.Errorf("selected = %q, want Kettle", opt.Value)
	}
	if got := f.Value(tracker.FieldUsageTime); got != "" {
		t.Errorf("usageTime = %q, want cleared", got)
	}
	if got := f.Value(tracker.FieldWattage); got != "2.2" {
		t.Errorf("wattage = %q, want 2.2", got)
	}
}

func TestAddItem_SubmitSuccess(t *testing.T) {
	fb := &fakeBackend{submitResult: &api.Result{Success: true}}
	m := openKitchen(t, fb)

	m = press(t, m, keyTab, typeText("2"), keySubmit)

	if len(fb.submitted) != 1 {
		t.Fatalf("submitted %d entries, want 1", len(fb.submitted))
	}
	e := fb.submitted[0]
	if e.ItemName != "Fridge" || e.Quantity != 2 || e.Coefficient != 0.15 || e.UserID != "42" {
		t.Errorf("entry = %+v", e)
	}
	wantBanner(t, m, tracker.SuccessMessage(tracker.KindAppliance), tracker.SeveritySuccess)
	if m.AddItemModel.form != nil {
		t.Error("form not cleared after success")
	}
	if m.AddItemModel.state.Mode != tracker.ModeAppliance {
		t.Errorf("Mode = %v, want unchanged", m.AddItemModel.state.Mode)
	}
}

func TestAddItem_SubmitOutcomes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		result   *api.Result
		err      error
		wantText string
		wantSent int
		keepForm bool
	}{
		{
			name:     "empty quantity",
			input:    "",
			wantText: tracker.ValidationMessage(tracker.KindAppliance),
			keepForm: true,
		},
		{
			name:     "zero quantity",
			input:    "0",
			wantText: tracker.ValidationMessage(tracker.KindAppliance),
			keepForm: true,
		},
		{
			name:     "rejected by server",
			input:    "1",
			result:   &api.Result{Success: false, Message: "Invalid quantity"},
			wantText: "Error: Invalid quantity",
			wantSent: 1,
			keepForm: true,
		},
		{
			name:     "network failure",
			input:    "1",
			err:      errors.New("connection refused"),
			wantText: tracker.SubmitErrorMessage,
			wantSent: 1,
			keepForm: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := &fakeBackend{submitResult: tt.result, submitErr: tt.err}
			m := openKitchen(t, fb)

			m = press(t, m, keyTab)
			if tt.input != "" {
				m = press(t, m, typeText(tt.input))
			}
			m = press(t, m, keySubmit)

			if len(fb.submitted) != tt.wantSent {
				t.Errorf("submitted %d entries, want %d", len(fb.submitted), tt.wantSent)
			}
			wantBanner(t, m, tt.wantText, tracker.SeverityDanger)
			if (m.AddItemModel.form != nil) != tt.keepForm {
				t.Errorf("form kept = %v, want %v", m.AddItemModel.form != nil, tt.keepForm)
			}
		})
	}
}

func TestAddItem_LookupNotices(t *testing.T) {
	tests := []struct {
		name string
		fb   *fakeBackend
		want string
	}{
		{
			name: "no items",
			fb:   &fakeBackend{items: map[string][]tracker.ReferenceItem{}},
			want: tracker.NotFoundNotice(tracker.KindAppliance),
		},
		{
			name: "lookup error",
			fb:   &fakeBackend{itemsErr: errors.New("boom")},
			want: tracker.LoadErrorNotice(tracker.KindAppliance),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := openKitchen(t, tt.fb)

			f := m.AddItemModel.form
			if f == nil || f.Notice != tt.want {
				t.Fatalf("form = %+v, want notice %q", f, tt.want)
			}
			if f.HasSelect() {
				t.Error("notice form has a select control")
			}

			// submit does nothing without a select control
			m = press(t, m, keySubmit)
			if len(tt.fb.submitted) != 0 {
				t.Error("submitted from a notice form")
			}
		})
	}
}

func TestAddItem_StaleLookupDropped(t *testing.T) {
	m := openKitchen(t, &fakeBackend{})
	stale := m.sh.itemGen.Current() - 1

	m = send(t, m, itemsLoadedMsg{
		gen:      stale,
		kind:     tracker.KindAppliance,
		itemType: "Heating",
		items:    []tracker.ReferenceItem{{Name: "Radiator"}},
	})

	if m.AddItemModel.form.ItemType != "Kitchen" {
		t.Errorf("form item type = %q, want Kitchen", m.AddItemModel.form.ItemType)
	}
}

func TestAddItem_BackClearsForm(t *testing.T) {
	m := openKitchen(t, &fakeBackend{})

	// focus the column and move to the back control
	m = press(t, m, keyTab, keyTab)
	for i := 0; i < 5; i++ {
		m = press(t, m, keyDown)
	}
	m = press(t, m, keyEnter)

	a := m.AddItemModel
	if a.state.Mode != tracker.ModeCategory {
		t.Errorf("Mode = %v, want %v", a.state.Mode, tracker.ModeCategory)
	}
	if a.form != nil || a.itemType != "" {
		t.Error("form not cleared by back")
	}
	if a.buttons.Back {
		t.Error("back control shown in category mode")
	}
}

func TestAddItem_EscGoesToMenu(t *testing.T) {
	m := newTestApp(t, &fakeBackend{}, ScreenAddItem)
	m = press(t, m, keyEsc)
	if m.CurrentScreen != ScreenMenu {
		t.Errorf("CurrentScreen = %v, want %v", m.CurrentScreen, ScreenMenu)
	}
}
