package source

import (
	"time"

	"github.com/hupe1980/reqindex/model"
)

const day = 24 * time.Hour

// SampleRecords returns a demonstration data set of ten service requests in
// Cape Town, with creation times relative to now and IDs 1 through 10.
func SampleRecords(now time.Time) []model.Record {
	resolvedAt := now.Add(-2 * day)

	return []model.Record{
		{
			ID:          1,
			Title:       "Broken streetlight on Main Road",
			Description: "The streetlight near the intersection is not working, creating safety concerns.",
			Category:    model.CategoryPublicSafety,
			Location:    "Main Road & Oak Street Intersection, Cape Town",
			Priority:    model.PriorityHigh,
			Status:      model.StatusInProgress,
			CreatedAt:   now.Add(-2 * day),
			Contact:     model.Contact{Name: "John Smith", Email: "john@example.com", Phone: "021-555-0123"},
		},
		{
			ID:          2,
			Title:       "Water leak in residential area",
			Description: "Continuous water leak causing flooding in the street.",
			Category:    model.CategoryWaterAndSanitation,
			Location:    "Sunset Avenue, Camps Bay",
			Priority:    model.PriorityCritical,
			Status:      model.StatusInReview,
			CreatedAt:   now.Add(-1 * day),
			Contact:     model.Contact{Name: "Sarah Johnson", Email: "sarah@example.com", Phone: "021-555-0456"},
		},
		{
			ID:          3,
			Title:       "Pothole on Highway M3",
			Description: "Large pothole causing damage to vehicles and creating hazardous driving conditions.",
			Category:    model.CategoryRoadsAndTransport,
			Location:    "M3 Highway near Kirstenbosch",
			Priority:    model.PriorityHigh,
			Status:      model.StatusSubmitted,
			CreatedAt:   now.Add(-5 * day),
			Contact:     model.Contact{Name: "Michael Chen", Email: "mchen@example.com", Phone: "021-555-0789"},
		},
		{
			ID:          4,
			Title:       "Illegal dumping in park",
			Description: "Large amount of waste dumped illegally in the public park area.",
			Category:    model.CategoryWasteManagement,
			Location:    "Green Point Urban Park",
			Priority:    model.PriorityMedium,
			Status:      model.StatusInProgress,
			CreatedAt:   now.Add(-3 * day),
			Contact:     model.Contact{Name: "Ayanda Mthembu", Email: "ayanda@example.com", Phone: "021-555-0234"},
		},
		{
			ID:          5,
			Title:       "Power outage in neighborhood",
			Description: "Entire neighborhood experiencing power outage for over 6 hours.",
			Category:    model.CategoryElectricityAndPower,
			Location:    "Sea Point, Beach Road area",
			Priority:    model.PriorityCritical,
			Status:      model.StatusInProgress,
			CreatedAt:   now.Add(-8 * time.Hour),
			Contact:     model.Contact{Name: "David Botha", Email: "dbotha@example.com", Phone: "021-555-0567"},
		},
		{
			ID:          6,
			Title:       "Overgrown vegetation blocking road sign",
			Description: "Trees and bushes have grown and are completely blocking the stop sign.",
			Category:    model.CategoryParksAndRecreation,
			Location:    "Constantia Main Road",
			Priority:    model.PriorityMedium,
			Status:      model.StatusSubmitted,
			CreatedAt:   now.Add(-7 * day),
			Contact:     model.Contact{Name: "Lisa van der Merwe", Email: "lisa@example.com", Phone: "021-555-0890"},
		},
		{
			ID:          7,
			Title:       "Broken traffic light at busy intersection",
			Description: "Traffic light has been malfunctioning causing traffic congestion and near-accidents.",
			Category:    model.CategoryRoadsAndTransport,
			Location:    "Main Road & Kloof Street, Gardens",
			Priority:    model.PriorityCritical,
			Status:      model.StatusInReview,
			CreatedAt:   now.Add(-1 * day),
			Contact:     model.Contact{Name: "Thabo Ndlovu", Email: "thabo@example.com", Phone: "021-555-0345"},
		},
		{
			ID:          8,
			Title:       "Blocked storm drain causing flooding",
			Description: "Storm drain is blocked with debris, causing water to pool during rain.",
			Category:    model.CategoryWaterAndSanitation,
			Location:    "Rondebosch Main Road",
			Priority:    model.PriorityHigh,
			Status:      model.StatusInProgress,
			CreatedAt:   now.Add(-4 * day),
			Contact:     model.Contact{Name: "Emma Williams", Email: "emma@example.com", Phone: "021-555-0678"},
		},
		{
			ID:          9,
			Title:       "Graffiti on public building",
			Description: "Extensive graffiti vandalism on the side of the community center.",
			Category:    model.CategoryPublicSafety,
			Location:    "Woodstock Community Center",
			Priority:    model.PriorityLow,
			Status:      model.StatusSubmitted,
			CreatedAt:   now.Add(-10 * day),
			Contact:     model.Contact{Name: "Peter Stewart", Email: "pstewart@example.com", Phone: "021-555-0901"},
		},
		{
			ID:          10,
			Title:       "Damaged playground equipment",
			Description: "Swing set has broken chains and poses safety risk to children.",
			Category:    model.CategoryParksAndRecreation,
			Location:    "Claremont Park Playground",
			Priority:    model.PriorityMedium,
			Status:      model.StatusResolved,
			CreatedAt:   now.Add(-15 * day),
			UpdatedAt:   &resolvedAt,
			Contact:     model.Contact{Name: "Nomsa Dlamini", Email: "nomsa@example.com", Phone: "021-555-0123"},
		},
	}
}
