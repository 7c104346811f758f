package handler

import (
	"github.com/gofiber/fiber/v2"

	"docsafe/internal/service"
)

// AdminStats serves the dashboard snapshot.
func AdminStats(statsSvc service.StatsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := statsSvc.AdminStats(c.UserContext())
		if err != nil {
			return writeServiceError(c, err, "statistics could not be computed")
		}
		return respondData(c, fiber.StatusOK, stats)
	}
}

// Charts serves the dashboard chart series. The type query parameter narrows
// the response to one series; anything else returns all of them.
func Charts(chartsSvc service.ChartsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data, err := chartsSvc.ChartData(c.UserContext(), queryInt(c, "days"))
		if err != nil {
			return writeServiceError(c, err, "chart data could not be computed")
		}

		switch c.Query("type", "all") {
		case "daily":
			return respondData(c, fiber.StatusOK, fiber.Map{"daily_activity": data.DailyActivity})
		case "hourly":
			return respondData(c, fiber.StatusOK, fiber.Map{"hourly_activity": data.HourlyActivity})
		case "status":
			return respondData(c, fiber.StatusOK, fiber.Map{"status_distribution": data.StatusDistribution})
		default:
			return respondData(c, fiber.StatusOK, data)
		}
	}
}
