package handlers_test

import (
	"bytes"
	"context"
	"image/png"
	"net/http"
	"reflect"
	"testing"

	"github.com/abrezinsky/electiondash/internal/models"
	"github.com/abrezinsky/electiondash/internal/services"
	"github.com/abrezinsky/electiondash/internal/testutil"
)

func TestHandleElections_Fallback(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodGet, "/elections", nil, "")

	expectStatus(t, rec, http.StatusOK)
	var elections []models.Election
	decodeBody(t, rec, &elections)
	if len(elections) != 1 || elections[0].ID != models.SeedElectionID {
		t.Errorf("expected the built-in election, got %+v", elections)
	}
}

func TestHandleElections_Registry(t *testing.T) {
	setup := newTestSetup(t)
	testutil.WriteRegistry(t, setup.store,
		models.Election{ID: "a", Name: "A", Type: models.Presidential},
		models.Election{ID: "b", Name: "B", Type: models.Municipal, IsDefault: true},
	)

	rec := setup.do(t, http.MethodGet, "/elections", nil, "")

	expectStatus(t, rec, http.StatusOK)
	var elections []models.Election
	decodeBody(t, rec, &elections)
	if len(elections) != 2 || elections[1].ID != "b" || !elections[1].IsDefault {
		t.Errorf("unexpected registry %+v", elections)
	}
}

func TestHandlePolls_SeedDefault(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodGet, "/polls", nil, "")

	expectStatus(t, rec, http.StatusOK)
	var polls models.PollCache
	decodeBody(t, rec, &polls)
	if len(polls.Candidates) == 0 || polls.Candidates[0].FullName != "Jordan Bardella" {
		t.Errorf("expected seed defaults for the default election, got %+v", polls)
	}
}

func TestHandlePolls_OtherElectionEmpty(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodGet, "/polls?election=other", nil, "")

	expectStatus(t, rec, http.StatusOK)
	if !bytes.Contains(rec.Body.Bytes(), []byte(`"candidates":[]`)) {
		t.Errorf("expected an empty candidates array, got %s", rec.Body.String())
	}
}

func TestHandlePolls_WrappedAndBareAgree(t *testing.T) {
	setup := newTestSetup(t)
	testutil.WriteFile(t, setup.store, "wrapped/poll_cache.json",
		`{"lastUpdate":"Mise à jour manuelle","candidates":[{"name":"A","score":30}]}`)
	testutil.WriteFile(t, setup.store, "bare/intentions_cache.json", `[{"name":"A","score":30}]`)

	var wrapped, bare models.PollCache
	rec := setup.do(t, http.MethodGet, "/polls?election=wrapped", nil, "")
	expectStatus(t, rec, http.StatusOK)
	decodeBody(t, rec, &wrapped)

	rec = setup.do(t, http.MethodGet, "/polls?election=bare", nil, "")
	expectStatus(t, rec, http.StatusOK)
	decodeBody(t, rec, &bare)

	if !reflect.DeepEqual(wrapped, bare) {
		t.Errorf("expected equivalent responses, got %+v and %+v", wrapped, bare)
	}
}

func TestDataEndpoints_RejectInvalidElection(t *testing.T) {
	setup := newTestSetup(t)
	endpoints := []string{"/polls", "/polls-r2", "/candidates", "/detailed-polls", "/map", "/news", "/dashboard"}
	ids := []string{"..%2F..%2Fetc", "a.b", "a%20b", "%C3%A9lection"}

	for _, endpoint := range endpoints {
		for _, id := range ids {
			t.Run(endpoint+"?"+id, func(t *testing.T) {
				rec := setup.do(t, http.MethodGet, endpoint+"?election="+id, nil, "")
				expectStatus(t, rec, http.StatusBadRequest)
			})
		}
	}

	files, err := setup.store.ListFiles(context.Background())
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("invalid requests must not touch the data root, found %v", files)
	}
	if setup.feeds.Calls() != 0 {
		t.Error("invalid requests must not fetch feeds")
	}
}

func TestHandleSecondRound(t *testing.T) {
	setup := newTestSetup(t)
	testutil.WriteFile(t, setup.store, "duel/poll_cache_r2.json", `{"lastUpdate":"hier","duel":"A / B","candidates":[]}`)

	rec := setup.do(t, http.MethodGet, "/polls-r2?election=duel", nil, "")

	expectStatus(t, rec, http.StatusOK)
	var r2 models.SecondRoundCache
	decodeBody(t, rec, &r2)
	if r2.Duel != "A / B" || r2.LastUpdate != "hier" {
		t.Errorf("unexpected runoff %+v", r2)
	}
}

func TestHandleCandidatesAndDetailedPolls(t *testing.T) {
	setup := newTestSetup(t)
	testutil.WriteFile(t, setup.store, "leg/partis_cache.json", `[{"fullName":"Parti A"}]`)
	testutil.WriteFile(t, setup.store, "leg/sondages_cache.json", `[{"institute":"Ifop","results":[]}]`)

	rec := setup.do(t, http.MethodGet, "/candidates?election=leg", nil, "")
	expectStatus(t, rec, http.StatusOK)
	var candidates models.CandidateCache
	decodeBody(t, rec, &candidates)
	if len(candidates.Candidates) != 1 || candidates.LastUpdate != models.ManualUpdateLabel {
		t.Errorf("unexpected candidates %+v", candidates)
	}

	rec = setup.do(t, http.MethodGet, "/detailed-polls?election=leg", nil, "")
	expectStatus(t, rec, http.StatusOK)
	var detailed models.DetailedPollCache
	decodeBody(t, rec, &detailed)
	if len(detailed.Polls) != 1 || detailed.Polls[0].Institute != "Ifop" {
		t.Errorf("unexpected detailed polls %+v", detailed)
	}
}

func TestHandleMap(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodGet, "/map", nil, "")
	expectStatus(t, rec, http.StatusBadRequest)

	rec = setup.do(t, http.MethodGet, "/map?election=muni", nil, "")
	expectStatus(t, rec, http.StatusOK)
	var empty models.MapCache
	decodeBody(t, rec, &empty)
	if len(empty.Cities) != 0 || empty.LastUpdate != "Jamais" {
		t.Errorf("expected an empty map, got %+v", empty)
	}

	testutil.WriteFile(t, setup.store, "muni/map_cache.json", `{"cities":[{"cityName":"Lyon","scores":[]}]}`)
	rec = setup.do(t, http.MethodGet, "/map?election=muni", nil, "")
	expectStatus(t, rec, http.StatusOK)
	var m models.MapCache
	decodeBody(t, rec, &m)
	if len(m.Cities) != 1 || m.LastUpdate == "Jamais" {
		t.Errorf("expected one city with a modification date, got %+v", m)
	}
}

func TestHandlePrograms(t *testing.T) {
	setup := newTestSetup(t)
	testutil.WriteFile(t, setup.store, "programs/DE.json",
		`{"lastUpdate":"2026-01-01","programs":[{"partyId":"spd","partyName":"SPD","categories":[{"name":"Économie","measures":[]}]}]}`)

	rec := setup.do(t, http.MethodGet, "/programs?country=DE", nil, "")
	expectStatus(t, rec, http.StatusOK)
	var programs models.ProgramCache
	decodeBody(t, rec, &programs)
	if len(programs.Programs) != 1 || programs.Programs[0].Categories[0].Icon != "wallet" {
		t.Errorf("expected an icon-filled program, got %+v", programs)
	}

	rec = setup.do(t, http.MethodGet, "/programs", nil, "")
	expectStatus(t, rec, http.StatusOK)
	decodeBody(t, rec, &programs)
	if programs.LastUpdate != "N/A" || len(programs.Programs) != 0 {
		t.Errorf("expected an empty catalog for FR, got %+v", programs)
	}

	rec = setup.do(t, http.MethodGet, "/programs?country=..%2Fx", nil, "")
	expectStatus(t, rec, http.StatusBadRequest)
}

func TestHandleNews_FeedsDown(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodGet, "/news?election=demo", nil, "")

	expectStatus(t, rec, http.StatusOK)
	if rec.Body.String() != "[]\n" {
		t.Errorf("expected an empty list, got %q", rec.Body.String())
	}
}

func TestHandleDashboard(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodGet, "/dashboard", nil, "")

	expectStatus(t, rec, http.StatusOK)
	var view services.Dashboard
	decodeBody(t, rec, &view)
	if view.Election.ID != models.SeedElectionID {
		t.Errorf("expected the default election, got %s", view.Election.ID)
	}
	if len(view.Candidates) == 0 || view.Candidates[0].Score == nil {
		t.Errorf("expected enriched candidates, got %+v", view.Candidates)
	}
	if view.SecondRound.Title == "" {
		t.Error("expected a runoff title")
	}
}

func TestHandleElectionQR(t *testing.T) {
	setup := newTestSetup(t)

	rec := setup.do(t, http.MethodGet, "/elections/"+models.SeedElectionID+"/qr", nil, "")

	expectStatus(t, rec, http.StatusOK)
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("expected image/png, got %q", ct)
	}
	if _, err := png.Decode(bytes.NewReader(rec.Body.Bytes())); err != nil {
		t.Errorf("expected a valid PNG: %v", err)
	}

	rec = setup.do(t, http.MethodGet, "/elections/unknown/qr", nil, "")
	expectStatus(t, rec, http.StatusNotFound)
}
