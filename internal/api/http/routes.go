package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/season-manager/internal/season"
)

var validate = validator.New()

// RegisterRoutes wires the host bridge handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *season.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/season", func(c *fiber.Ctx) error {
		return c.JSON(newStateResponse(service.State(), service.TrustedInput()))
	})

	v1.Get("/season/:name", func(c *fiber.Ctx) error {
		s, err := season.ParseSeason(c.Params("name"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return c.JSON(fiber.Map{
			"season": s.String(),
			"value":  service.Query(s),
		})
	})

	v1.Post("/season/toggle", func(c *fiber.Ctx) error {
		st, err := service.Toggle()
		resp := fiber.Map{
			"state":     newStateResponse(st, service.TrustedInput()),
			"persisted": err == nil,
		}
		if err != nil {
			resp["warning"] = err.Error()
		}
		return c.JSON(resp)
	})

	v1.Post("/environment", func(c *fiber.Ctx) error {
		var req environmentRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		h, err := req.hemisphere()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		st, err := service.NotifyEnvironment(*req.Day, h, req.Trusted)
		if err != nil {
			return sampleError(err)
		}
		return c.JSON(newStateResponse(st, service.TrustedInput()))
	})

	v1.Post("/host/events", func(c *fiber.Ctx) error {
		var req hostEventRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		event, err := season.ParseHostEvent(req.Event)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		st, applied, err := service.HandleHostEvent(event, *req.Day, *req.Latitude)
		if err != nil {
			return sampleError(err)
		}
		return c.JSON(fiber.Map{
			"applied": applied,
			"state":   newStateResponse(st, service.TrustedInput()),
		})
	})
}

func sampleError(err error) error {
	switch {
	case errors.Is(err, season.ErrInvalidDayOfYear):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, season.ErrUntrustedInput):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, "failed to apply environment sample")
}

// environmentRequest is the body of the notify_environment command. Either
// hemisphere or latitude must be present.
type environmentRequest struct {
	Day        *int     `json:"day" validate:"required,min=0,max=365"`
	Hemisphere string   `json:"hemisphere" validate:"required_without=Latitude,omitempty,oneof=north south"`
	Latitude   *float64 `json:"latitude" validate:"required_without=Hemisphere,omitempty,min=-90,max=90"`
	Trusted    bool     `json:"trusted"`
}

func (r environmentRequest) hemisphere() (season.Hemisphere, error) {
	if r.Hemisphere != "" {
		return season.ParseHemisphere(r.Hemisphere)
	}
	return season.HemisphereFromLatitude(*r.Latitude), nil
}

// hostEventRequest carries a host load message with the sample read at that time.
type hostEventRequest struct {
	Event    string   `json:"event" validate:"required,oneof=airport_loaded scenery_loaded other"`
	Day      *int     `json:"day" validate:"required"`
	Latitude *float64 `json:"latitude" validate:"required,min=-90,max=90"`
}

type stateResponse struct {
	Day        int               `json:"day"`
	DayKnown   bool              `json:"dayKnown"`
	Hemisphere season.Hemisphere `json:"hemisphere"`
	Enabled    bool              `json:"enabled"`
	Phase      season.Phase      `json:"phase"`
	Trusted    bool              `json:"trusted"`
	Seasons    map[string]int    `json:"seasons"`
}

func newStateResponse(st season.State, trusted bool) stateResponse {
	eff := st.Effective()
	seasons := make(map[string]int, len(season.Seasons))
	for _, s := range season.Seasons {
		seasons[s.String()] = eff.Weight(s)
	}
	return stateResponse{
		Day:        st.Day,
		DayKnown:   st.DayKnown(),
		Hemisphere: st.Hemisphere,
		Enabled:    st.Enabled,
		Phase:      st.Phase,
		Trusted:    trusted,
		Seasons:    seasons,
	}
}
