package services

import (
	"fmt"
	"testing"

	"github.com/scriptvault/backend/internal/models"
	"gorm.io/gorm"
)

type scriptFixture struct {
	db       *gorm.DB
	auth     *AuthService
	projects *ProjectService
	scripts  *ScriptService
}

func newScriptFixture(t *testing.T) *scriptFixture {
	t.Helper()
	db := newTestDB(t)
	return &scriptFixture{
		db:       db,
		auth:     NewAuthService(db, NewTokenService(testJWTConfig())),
		projects: NewProjectService(db),
		scripts:  NewScriptService(db),
	}
}

func (f *scriptFixture) project(t *testing.T, ownerID uint, name string) *models.Project {
	t.Helper()
	project, err := f.projects.Create(ownerID, &CreateProjectRequest{Name: name})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	return project
}

func (f *scriptFixture) scriptsCount(t *testing.T, projectID uint) int64 {
	t.Helper()
	var project models.Project
	if err := f.db.First(&project, projectID).Error; err != nil {
		t.Fatalf("load project: %v", err)
	}
	return project.ScriptsCount
}

func TestScriptCreate(t *testing.T) {
	f := newScriptFixture(t)
	ann := registerUser(t, f.auth, "Ann", "a@x.com")
	project := f.project(t, ann.ID, "Demo")

	script, err := f.scripts.Create(ann.ID, &CreateScriptRequest{
		Name:       "Intro",
		Platform:   "web",
		Transcript: "hello world",
		ProjectID:  project.ID,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if script.OwnerID != ann.ID {
		t.Errorf("owner = %d, expected %d", script.OwnerID, ann.ID)
	}
	if script.Version != 1 {
		t.Errorf("version = %d, expected 1", script.Version)
	}
	if script.Status != models.ScriptStatusDraft {
		t.Errorf("status = %q, expected draft", script.Status)
	}
	if script.UploadDate == "" || script.UploadTime == "" {
		t.Error("upload display fields not set")
	}
	if got := f.scriptsCount(t, project.ID); got != 1 {
		t.Errorf("scripts_count = %d, expected 1", got)
	}
}

func TestScriptCreate_Validation(t *testing.T) {
	f := newScriptFixture(t)
	ann := registerUser(t, f.auth, "Ann", "a@x.com")
	project := f.project(t, ann.ID, "Demo")

	tests := []struct {
		name string
		req  CreateScriptRequest
	}{
		{"missing name", CreateScriptRequest{Platform: "web", Transcript: "x", ProjectID: project.ID}},
		{"missing transcript", CreateScriptRequest{Name: "S", Platform: "web", ProjectID: project.ID}},
		{"unknown platform", CreateScriptRequest{Name: "S", Platform: "fax", Transcript: "x", ProjectID: project.ID}},
		{"missing project", CreateScriptRequest{Name: "S", Platform: "web", Transcript: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.scripts.Create(ann.ID, &tt.req)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if got := appErr(t, err).HTTPStatus; got != 400 {
				t.Errorf("status = %d, expected 400", got)
			}
		})
	}
}

func TestScriptCreate_ForeignProjectIsNotFound(t *testing.T) {
	f := newScriptFixture(t)
	ann := registerUser(t, f.auth, "Ann", "a@x.com")
	bob := registerUser(t, f.auth, "Bob", "b@x.com")
	annProject := f.project(t, ann.ID, "Private")

	_, err := f.scripts.Create(bob.ID, &CreateScriptRequest{
		Name:       "Sneaky",
		Platform:   "web",
		Transcript: "x",
		ProjectID:  annProject.ID,
	})
	if err == nil {
		t.Fatal("expected not found")
	}
	if got := appErr(t, err).HTTPStatus; got != 404 {
		t.Errorf("status = %d, expected 404", got)
	}
	if got := f.scriptsCount(t, annProject.ID); got != 0 {
		t.Errorf("scripts_count = %d, expected 0", got)
	}
}

func TestScriptUpdate_VersionIncrementsPerCall(t *testing.T) {
	f := newScriptFixture(t)
	ann := registerUser(t, f.auth, "Ann", "a@x.com")
	project := f.project(t, ann.ID, "Demo")

	script, err := f.scripts.Create(ann.ID, &CreateScriptRequest{
		Name: "Intro", Platform: "web", Transcript: "v1", ProjectID: project.ID,
	})
	if err != nil {
		t.Fatal(err)
	}

	transcript := "v2"
	updated, err := f.scripts.Update(ann.ID, script.ID, &UpdateScriptRequest{Transcript: &transcript})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Version != 2 {
		t.Errorf("version = %d, expected 2", updated.Version)
	}
	if updated.Transcript != "v2" {
		t.Errorf("transcript = %q, expected v2", updated.Transcript)
	}

	// A no-field update still counts as a revision
	updated, err = f.scripts.Update(ann.ID, script.ID, &UpdateScriptRequest{})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Version != 3 {
		t.Errorf("version = %d, expected 3", updated.Version)
	}
}

func TestScriptUpdate_InvalidStatus(t *testing.T) {
	f := newScriptFixture(t)
	ann := registerUser(t, f.auth, "Ann", "a@x.com")
	project := f.project(t, ann.ID, "Demo")

	script, err := f.scripts.Create(ann.ID, &CreateScriptRequest{
		Name: "Intro", Platform: "web", Transcript: "x", ProjectID: project.ID,
	})
	if err != nil {
		t.Fatal(err)
	}

	status := "shipped"
	_, err = f.scripts.Update(ann.ID, script.ID, &UpdateScriptRequest{Status: &status})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if got := appErr(t, err).HTTPStatus; got != 400 {
		t.Errorf("status = %d, expected 400", got)
	}

	// A rejected update must not bump the version
	current, err := f.scripts.GetByID(ann.ID, script.ID)
	if err != nil {
		t.Fatal(err)
	}
	if current.Version != 1 {
		t.Errorf("version = %d, expected 1 after rejected update", current.Version)
	}
}

func TestScriptCrossOwnerAccessIsNotFound(t *testing.T) {
	f := newScriptFixture(t)
	ann := registerUser(t, f.auth, "Ann", "a@x.com")
	bob := registerUser(t, f.auth, "Bob", "b@x.com")
	project := f.project(t, ann.ID, "Demo")

	script, err := f.scripts.Create(ann.ID, &CreateScriptRequest{
		Name: "Intro", Platform: "web", Transcript: "x", ProjectID: project.ID,
	})
	if err != nil {
		t.Fatal(err)
	}

	name := "Hijacked"
	if _, err := f.scripts.GetByID(bob.ID, script.ID); appErr(t, err).HTTPStatus != 404 {
		t.Error("cross-owner get should be 404")
	}
	if _, err := f.scripts.Update(bob.ID, script.ID, &UpdateScriptRequest{Name: &name}); appErr(t, err).HTTPStatus != 404 {
		t.Error("cross-owner update should be 404")
	}
	if err := f.scripts.Delete(bob.ID, script.ID); appErr(t, err).HTTPStatus != 404 {
		t.Error("cross-owner delete should be 404")
	}
}

func TestScriptDelete_RefreshesProjectCount(t *testing.T) {
	f := newScriptFixture(t)
	ann := registerUser(t, f.auth, "Ann", "a@x.com")
	project := f.project(t, ann.ID, "Demo")

	first, err := f.scripts.Create(ann.ID, &CreateScriptRequest{
		Name: "One", Platform: "web", Transcript: "x", ProjectID: project.ID,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.scripts.Create(ann.ID, &CreateScriptRequest{
		Name: "Two", Platform: "web", Transcript: "x", ProjectID: project.ID,
	}); err != nil {
		t.Fatal(err)
	}
	if got := f.scriptsCount(t, project.ID); got != 2 {
		t.Fatalf("scripts_count = %d, expected 2", got)
	}

	if err := f.scripts.Delete(ann.ID, first.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if got := f.scriptsCount(t, project.ID); got != 1 {
		t.Errorf("scripts_count = %d, expected 1", got)
	}
	if _, err := f.scripts.GetByID(ann.ID, first.ID); appErr(t, err).HTTPStatus != 404 {
		t.Error("deleted script should be 404")
	}
}

func TestScriptList_Pagination(t *testing.T) {
	f := newScriptFixture(t)
	ann := registerUser(t, f.auth, "Ann", "a@x.com")
	project := f.project(t, ann.ID, "Demo")

	for i := 0; i < 15; i++ {
		if _, err := f.scripts.Create(ann.ID, &CreateScriptRequest{
			Name:       fmt.Sprintf("Script %02d", i),
			Platform:   "web",
			Transcript: "x",
			ProjectID:  project.ID,
		}); err != nil {
			t.Fatal(err)
		}
	}

	resp, err := f.scripts.List(ann.ID, &ScriptListRequest{Page: 2, Limit: 10})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(resp.Items) != 5 {
		t.Errorf("page 2 items = %d, expected 5", len(resp.Items))
	}
	p := resp.Pagination
	if p.Page != 2 || p.Limit != 10 || p.Total != 15 || p.Pages != 2 {
		t.Errorf("pagination = %+v, expected page 2, limit 10, total 15, pages 2", p)
	}

	// Out-of-range values fall back to defaults
	resp, err = f.scripts.List(ann.ID, &ScriptListRequest{Page: -1, Limit: 0})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if resp.Pagination.Page != 1 || resp.Pagination.Limit != 10 {
		t.Errorf("defaults = page %d limit %d, expected 1/10", resp.Pagination.Page, resp.Pagination.Limit)
	}
}

func TestScriptList_SearchMatchesNameOrTranscript(t *testing.T) {
	f := newScriptFixture(t)
	ann := registerUser(t, f.auth, "Ann", "a@x.com")
	project := f.project(t, ann.ID, "Demo")

	if _, err := f.scripts.Create(ann.ID, &CreateScriptRequest{
		Name: "Morning Show", Platform: "web", Transcript: "plain text", ProjectID: project.ID,
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.scripts.Create(ann.ID, &CreateScriptRequest{
		Name: "Other", Platform: "web", Transcript: "the MORNING rundown", ProjectID: project.ID,
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.scripts.Create(ann.ID, &CreateScriptRequest{
		Name: "Stats", Platform: "web", Transcript: "grew 100% last year", ProjectID: project.ID,
	}); err != nil {
		t.Fatal(err)
	}

	// Matches either column, case-insensitively
	resp, err := f.scripts.List(ann.ID, &ScriptListRequest{Search: "morning"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if resp.Pagination.Total != 2 {
		t.Errorf("search matched %d scripts, expected 2", resp.Pagination.Total)
	}

	// Wildcard characters are literal
	resp, err = f.scripts.List(ann.ID, &ScriptListRequest{Search: "100%"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if resp.Pagination.Total != 1 || resp.Items[0].Name != "Stats" {
		t.Errorf("literal search matched %d scripts", resp.Pagination.Total)
	}
}

func TestScriptList_SearchScopedToOwner(t *testing.T) {
	f := newScriptFixture(t)
	ann := registerUser(t, f.auth, "Ann", "a@x.com")
	bob := registerUser(t, f.auth, "Bob", "b@x.com")
	annProject := f.project(t, ann.ID, "Ann Project")
	bobProject := f.project(t, bob.ID, "Bob Project")

	mine, err := f.scripts.Create(ann.ID, &CreateScriptRequest{
		Name: "Launch", Platform: "web", Transcript: "the rollout plan", ProjectID: annProject.ID,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.scripts.Create(bob.ID, &CreateScriptRequest{
		Name: "Launch", Platform: "web", Transcript: "the rollout plan", ProjectID: bobProject.ID,
	}); err != nil {
		t.Fatal(err)
	}

	// Another owner's matching rows must stay invisible even when the
	// search clause ORs over two columns
	resp, err := f.scripts.List(ann.ID, &ScriptListRequest{Search: "rollout"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if resp.Pagination.Total != 1 {
		t.Fatalf("search matched %d scripts, expected only the caller's", resp.Pagination.Total)
	}
	if resp.Items[0].ID != mine.ID || resp.Items[0].OwnerID != ann.ID {
		t.Errorf("search leaked script %d owned by %d", resp.Items[0].ID, resp.Items[0].OwnerID)
	}
}

func TestScriptList_FiltersAndProjectScope(t *testing.T) {
	f := newScriptFixture(t)
	ann := registerUser(t, f.auth, "Ann", "a@x.com")
	bob := registerUser(t, f.auth, "Bob", "b@x.com")
	annProject := f.project(t, ann.ID, "Ann Project")
	otherProject := f.project(t, ann.ID, "Ann Other")

	if _, err := f.scripts.Create(ann.ID, &CreateScriptRequest{
		Name: "Web", Platform: "web", Transcript: "x", ProjectID: annProject.ID,
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.scripts.Create(ann.ID, &CreateScriptRequest{
		Name: "Mobile", Platform: "mobile", Transcript: "x", ProjectID: otherProject.ID,
	}); err != nil {
		t.Fatal(err)
	}

	resp, err := f.scripts.List(ann.ID, &ScriptListRequest{ProjectID: annProject.ID})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if resp.Pagination.Total != 1 || resp.Items[0].Name != "Web" {
		t.Errorf("project scope returned %d scripts", resp.Pagination.Total)
	}

	resp, err = f.scripts.List(ann.ID, &ScriptListRequest{Platform: "mobile"})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if resp.Pagination.Total != 1 || resp.Items[0].Name != "Mobile" {
		t.Errorf("platform filter returned %d scripts", resp.Pagination.Total)
	}

	// Unknown filter values are rejected
	if _, err := f.scripts.List(ann.ID, &ScriptListRequest{Platform: "fax"}); appErr(t, err).HTTPStatus != 400 {
		t.Error("unknown platform should be 400")
	}
	if _, err := f.scripts.List(ann.ID, &ScriptListRequest{Status: "shipped"}); appErr(t, err).HTTPStatus != 400 {
		t.Error("unknown status should be 400")
	}

	// Listing someone else's project is indistinguishable from a missing one
	if _, err := f.scripts.List(bob.ID, &ScriptListRequest{ProjectID: annProject.ID}); appErr(t, err).HTTPStatus != 404 {
		t.Error("foreign project listing should be 404")
	}
}
