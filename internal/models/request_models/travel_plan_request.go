package request_models

import "bytes"

type CreatePlanRequest struct {
	TravelRequest   string   `json:"travelRequest"`
	ForceRegenerate FlexBool `json:"forceRegenerate"`
}

// FlexBool is true for JSON true or the string "true"; any other value,
// including a missing field, reads as false.
type FlexBool bool

func (f *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*f = FlexBool(bytes.Equal(data, []byte("true")) || bytes.Equal(data, []byte(`"true"`)))
	return nil
}
