package services

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("exit status 1")
	err := Wrap(ErrStageFailure, "pipeline", "reap", "decode stage exited nonzero", base)
	if !errors.Is(err, ErrStageFailure) {
		t.Fatalf("expected stage failure marker, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped base error, got %v", err)
	}
	if !strings.Contains(err.Error(), "pipeline: reap: decode stage exited nonzero") {
		t.Fatalf("unexpected detail: %v", err)
	}
}

func TestWrapNilMarkerDefaults(t *testing.T) {
	err := Wrap(nil, "pipeline", "", "", nil)
	if !errors.Is(err, ErrStageFailure) {
		t.Fatalf("expected stage failure default, got %v", err)
	}
}

func TestWrapEmptyDetail(t *testing.T) {
	err := Wrap(ErrLaunch, "", "", "", nil)
	if !strings.Contains(err.Error(), "pipeline failure") {
		t.Fatalf("expected fallback detail, got %v", err)
	}
}

func TestWrapDistinctMarkers(t *testing.T) {
	err := Wrap(ErrMultiplex, "mux", "combine", "ffmpeg exited nonzero", nil)
	if errors.Is(err, ErrStageFailure) || errors.Is(err, ErrLaunch) {
		t.Fatalf("marker leaked across sentinels: %v", err)
	}
	if !errors.Is(err, ErrMultiplex) {
		t.Fatalf("expected multiplex marker, got %v", err)
	}
}
