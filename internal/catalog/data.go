package catalog

import "github.com/BerylCAtieno/fondue-strategy-agent/internal/models"

var channels = []models.ChannelInfo{
	{ID: models.ChannelPhoto, Label: "Photography", Icon: "camera"},
	{ID: models.ChannelVideo, Label: "Video Content", Icon: "video"},
	{ID: models.ChannelPost, Label: "Social Post", Icon: "file-text"},
	{ID: models.ChannelAd, Label: "Paid Advertisement", Icon: "megaphone"},
	{ID: models.ChannelEDM, Label: "Email Marketing", Icon: "mail"},
	{ID: models.ChannelInfluencer, Label: "Influencer Partnership", Icon: "star"},
}

var audiences = []models.AudienceProfile{
	{
		ID:             "foodies",
		Title:          "Food and Event Enthusiasts",
		Description:    "A rare chance to experience a true French Alpine cheese ritual, exactly as it’s meant to be shared.",
		Profile:        `High-end foodies, "Broadsheet" readers.`,
		AvgAge:         "35–45",
		DecisionTime:   "1–3 days",
		Interests:      []string{"Wine pairing", "Food photography", "Cultural authenticity"},
		BestVisitTimes: []string{"Thu/Fri (7pm–9pm)"},
		PeakOnlineTime: []string{"12pm (Lunch)", "8pm"},
		Expectation:    "Aesthetic perfection (Instagrammable) and premium ingredient quality.",
		Icon:           "utensils",
	},
	{
		ID:             "young-friends",
		Title:          "Young Group of Friends",
		Description:    "A winter night in the French Alps built for gathering - one chalet, one table, one shared ritual.",
		Profile:        "Established white-collar professionals (South Yarra/Fitzroy).",
		AvgAge:         "30–38",
		DecisionTime:   "3–5 days (coordinated via WhatsApp)",
		Interests:      []string{"Pilates", "Mt Buller skiing", "Weekend brunch"},
		BestVisitTimes: []string{"Sat (7pm–9pm)", "Sun (11am–2pm)"},
		PeakOnlineTime: []string{"6pm–9pm (Post-work)"},
		Expectation:    `Social vibe and a unique "night out" alternative to standard bars.`,
		Icon:           "coffee",
	},
	{
		ID:             "old-friends",
		Title:          "Old Group of Friends",
		Description:    "A fun French Alpine evening designed for long conversations, great food, and shared moments.",
		Profile:        "Long-time residents (Brighton/Hawthorn), established couples.",
		AvgAge:         "50–65",
		DecisionTime:   "1–2 weeks (Planned ahead)",
		Interests:      []string{"Golfing", "Gardening", "Theater", "Wine collections"},
		BestVisitTimes: []string{"Sun (11am–2pm)", "Thu (7pm)"},
		PeakOnlineTime: []string{"8am–10am"},
		Expectation:    "Comfort, high-quality service, and low ambient noise for conversation.",
		Icon:           "wine",
	},
	{
		ID:             "families",
		Title:          "Families",
		Description:    "A cultural and fun immersion for the entire family that brings them together (5pm sessions, gifts for kids).",
		Profile:        "Active parents looking for educational/bonding winter activities.",
		AvgAge:         "38–50",
		DecisionTime:   "5 days (Decided early in the week)",
		Interests:      []string{"School sports", "Family travel", "Sustainability"},
		BestVisitTimes: []string{"Sat/Sun (11am–2pm)"},
		PeakOnlineTime: []string{"7am", "9pm (After kids are asleep)"},
		Expectation:    `Kid-friendly engagement and creating a "European Winter" memory.`,
		Icon:           "home",
	},
	{
		ID:             "corporate",
		Title:          "Corporate Group",
		Description:    "A winter team experience that brings people together naturally, beyond the office.",
		Profile:        "CBD/Docklands Managers and Directors.",
		AvgAge:         "35–55",
		DecisionTime:   "Fast (Once budget is approved)",
		Interests:      []string{"Networking", "LinkedIn", "Tennis", "Economics"},
		BestVisitTimes: []string{"Thu (7pm–9pm)"},
		PeakOnlineTime: []string{"9am–11am (Office hours)"},
		Expectation:    `Seamless booking and a natural "ice-breaker" activity.`,
		Icon:           "briefcase",
	},
	{
		ID:             "internationals",
		Title:          "Late-dinner Internationals",
		Description:    "A European-style Alpine night, with late dinners, shared fondue, and time to linger.",
		Profile:        "European/South American expats or locals with a late-night lifestyle.",
		AvgAge:         "32–45",
		DecisionTime:   "Spontaneous (1–2 days)",
		Interests:      []string{"Contemporary art", "Nightlife", "Electronic music/jazz"},
		BestVisitTimes: []string{"Fri/Sat (7pm–9pm, staying late)"},
		PeakOnlineTime: []string{"10pm–12am"},
		Expectation:    "Warm hospitality, European wine list, and a sense of escapism.",
		Icon:           "moon",
	},
}

var keySentences = []string{
	"A French Melted Cheese Experience",
	"Choose your cheese ritual and escape into your own chalet in the Alps (…at Fed Square)",
	"Feast cheese Fondue or Raclette in your private chalet.",
	"For 7 weeks only in the heart of Melbourne",
	"A French Alpine Village is popping at Fed Square",
	"This Winter, escape to the French Alps right in the heart of Melbourne",
	"Dine in your private chalet in the Alps",
	"18 authentic wooden chalets imported from France",
	"Expect snow falling, melted cheese and mulled wine",
	"Gather your loved ones for a unique night",
}

var keywords = []string{
	"Alps", "French", "wooden", "chalet", "private", "winter", "escape", "snow", "forest", "village",
	"Melbourne", "Fed Square", "mountain", "Cheese", "melted", "Savoyarde Fondue", "Mountain Raclette",
	"team", "ritual", "tradition", "iconic", "unique", "authentic", "gather", "loved one", "warm",
	"cosy", "convivial", "shared", "cocktail", "fire pit", "cheers", "ski bar", "share", "midweek",
	"break", "rendez-vous", "late-night", "experience",
}
