package model

// CutSettings holds optimizer configuration.
type CutSettings struct {
	KerfWidth float64 `json:"kerf_width"` // Blade width in mm, reserved once per dimension of each piece
}

func DefaultSettings() CutSettings {
	return CutSettings{
		KerfWidth: 3.0,
	}
}
