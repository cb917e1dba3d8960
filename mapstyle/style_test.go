package mapstyle

import (
	"image/color"
	"testing"
)

func TestNewDefaults(t *testing.T) {
	s := New()
	if s.HAlign != HAlignCenter {
		t.Errorf("expected default HAlign center, got %v", s.HAlign)
	}
	if s.VAlign != VAlignMiddle {
		t.Errorf("expected default VAlign middle, got %v", s.VAlign)
	}
}

func TestInvalidEnumsSilentlyIgnored(t *testing.T) {
	s := New()
	s.SetHAlign(HAlign(99))
	if s.HAlign != HAlignCenter {
		t.Errorf("expected invalid HAlign to be ignored, got %v", s.HAlign)
	}
	s.SetVAlign(VAlign(99))
	if s.VAlign != VAlignMiddle {
		t.Errorf("expected invalid VAlign to be ignored, got %v", s.VAlign)
	}
}

func TestNegativeBorderWidthRejected(t *testing.T) {
	s := New()
	s.SetBorder(color.NRGBA{R: 1, A: 255}, -1)
	if s.BorderWidth != 0 {
		t.Errorf("expected negative border width to be rejected, got %v", s.BorderWidth)
	}
}

func TestNonPositiveFontSizeRejected(t *testing.T) {
	s := New()
	s.SetFont("Arial", 0)
	if s.FontName != "" {
		t.Errorf("expected font set to be rejected, got %q", s.FontName)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := New()
	s.SetColor(color.NRGBA{R: 10, A: 255})
	clone := s.Clone()
	clone.SetColor(color.NRGBA{R: 20, A: 255})
	if s.Color.R == clone.Color.R {
		t.Error("expected clone mutation not to affect original")
	}
}
