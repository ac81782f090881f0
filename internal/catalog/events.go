package catalog

import "github.com/ubuntu-fest/leaderboard-api/internal/domain"

func entry(v int) *int { return &v }

var (
	flagshipWinners = domain.WinnerPoints{First: 1000, Second: 850, Third: 700}
	largeWinners    = domain.WinnerPoints{First: 800, Second: 600, Third: 400}
	smallWinners    = domain.WinnerPoints{First: 400, Second: 300, Third: 200}
)

var events = []domain.Event{
	// Day 1, flagship
	{ID: "f1", ThemedName: "BGMI", DisplayName: "BGMI", Type: domain.EventTypeFlagship, Category: "Online Games", Day: 1, Solo: nil, Group: entry(200), ParticipationPoints: 250, WinnerPoints: flagshipWinners},
	{ID: "f2", ThemedName: "Winds of Trade", DisplayName: "Mock Stock", Type: domain.EventTypeFlagship, Category: "Online Games", Day: 1, Solo: entry(100), Group: nil, ParticipationPoints: 250, WinnerPoints: flagshipWinners},
	// Day 1, large
	{ID: "l1", ThemedName: "Whisper of Air", DisplayName: "Singing", Type: domain.EventTypeLarge, Category: "Performing Arts", Day: 1, Solo: entry(50), Group: nil, ParticipationPoints: 150, WinnerPoints: largeWinners},
	{ID: "l2", ThemedName: "Vadyon ka Mahasangram", DisplayName: "Instrumental", Type: domain.EventTypeLarge, Category: "Performing Arts", Day: 1, Solo: entry(100), Group: nil, ParticipationPoints: 150, WinnerPoints: largeWinners},
	{ID: "l3", ThemedName: "Canva Carnival", DisplayName: "Canva", Type: domain.EventTypeLarge, Category: "Fine Arts", Day: 1, Solo: entry(50), Group: nil, ParticipationPoints: 150, WinnerPoints: largeWinners},
	{ID: "l4", ThemedName: "Battle of Minds", DisplayName: "Chess", Type: domain.EventTypeLarge, Category: "Sports", Day: 1, Solo: entry(50), Group: nil, ParticipationPoints: 150, WinnerPoints: largeWinners},
	{ID: "l5", ThemedName: "PrithviSrijan - Navrachna", DisplayName: "Best Out of Waste", Type: domain.EventTypeLarge, Category: "Creative Challenges", Day: 1, Solo: entry(50), Group: nil, ParticipationPoints: 150, WinnerPoints: largeWinners},
	{ID: "l6", ThemedName: "Rahasaymayi Band Darwaze", DisplayName: "Escape Room", Type: domain.EventTypeLarge, Category: "Creative Challenges", Day: 1, Solo: nil, Group: entry(100), ParticipationPoints: 150, WinnerPoints: largeWinners},
	{ID: "l7", ThemedName: "VayuSmash", DisplayName: "Badminton", Type: domain.EventTypeLarge, Category: "Sports", Day: 1, Solo: entry(100), Group: nil, ParticipationPoints: 150, WinnerPoints: largeWinners},
	{ID: "l8", ThemedName: "Streams of Stories", DisplayName: "Story Mode Photography", Type: domain.EventTypeLarge, Category: "Creative Challenges", Day: 1, Solo: entry(50), Group: nil, ParticipationPoints: 150, WinnerPoints: largeWinners},
	// Day 1, small
	{ID: "s1", ThemedName: "One Frame Drama", DisplayName: "Mono Act", Type: domain.EventTypeSmall, Category: "Performing Arts", Day: 1, Solo: entry(50), Group: nil, ParticipationPoints: 50, WinnerPoints: smallWinners},
	{ID: "s2", ThemedName: "Colours of Heritage", DisplayName: "Rangoli", Type: domain.EventTypeSmall, Category: "Fine Arts", Day: 1, Solo: entry(50), Group: nil, ParticipationPoints: 50, WinnerPoints: smallWinners},
	{ID: "s3", ThemedName: "PrithviChitra - Art of the Earth", DisplayName: "Face Beauty", Type: domain.EventTypeSmall, Category: "Fine Arts", Day: 1, Solo: entry(50), Group: nil, ParticipationPoints: 50, WinnerPoints: smallWinners},
	{ID: "s4", ThemedName: "Shabdon Ki Mehfil", DisplayName: "Slam Poetry", Type: domain.EventTypeSmall, Category: "Fine Arts", Day: 1, Solo: entry(50), Group: nil, ParticipationPoints: 50, WinnerPoints: smallWinners},
	{ID: "s5", ThemedName: "E-Football", DisplayName: "E-Football", Type: domain.EventTypeSmall, Category: "Online Games", Day: 1, Solo: entry(50), Group: nil, ParticipationPoints: 50, WinnerPoints: smallWinners},
	{ID: "s6", ThemedName: "Realm of Reels", DisplayName: "Reel Making", Type: domain.EventTypeSmall, Category: "Creative Challenges", Day: 1, Solo: entry(50), Group: nil, ParticipationPoints: 50, WinnerPoints: smallWinners},
	// Day 2, flagship
	{ID: "f3", ThemedName: "1 v 1 FootBall", DisplayName: "1v1 Football", Type: domain.EventTypeFlagship, Category: "Sports", Day: 2, Solo: entry(100), Group: nil, ParticipationPoints: 250, WinnerPoints: flagshipWinners},
	{ID: "f4", ThemedName: "Crown of the Cosmos", DisplayName: "Mr & Ms Ubuntu", Type: domain.EventTypeFlagship, Category: "Performing Arts", Day: 2, Solo: entry(100), Group: nil, ParticipationPoints: 250, WinnerPoints: flagshipWinners},
	{ID: "f5", ThemedName: "Fusion of Tarsas", DisplayName: "Fashion Show", Type: domain.EventTypeFlagship, Category: "Performing Arts", Day: 2, Solo: nil, Group: entry(250), ParticipationPoints: 250, WinnerPoints: flagshipWinners},
	{ID: "f6", ThemedName: "AgniNiriya - The Rhythmic Flow", DisplayName: "Dance (Group)", Type: domain.EventTypeFlagship, Category: "Performing Arts", Day: 2, Solo: nil, Group: entry(250), ParticipationPoints: 250, WinnerPoints: flagshipWinners},
	{ID: "f7", ThemedName: "IPL Auction", DisplayName: "IPL Auction", Type: domain.EventTypeFlagship, Category: "Online Games", Day: 2, Solo: entry(100), Group: nil, ParticipationPoints: 250, WinnerPoints: flagshipWinners},
	{ID: "f8", ThemedName: "Panchatva ki Khoj - The Quest of the", DisplayName: "Treasure Hunt", Type: domain.EventTypeFlagship, Category: "Creative Challenges", Day: 2, Solo: nil, Group: entry(100), ParticipationPoints: 250, WinnerPoints: flagshipWinners},
	{ID: "f9", ThemedName: "Human Ludo", DisplayName: "Human Ludo", Type: domain.EventTypeFlagship, Category: "Creative Challenges", Day: 2, Solo: nil, Group: entry(200), ParticipationPoints: 250, WinnerPoints: flagshipWinners},
	// Day 2, large
	{ID: "l9", ThemedName: "AgniNiriya - The Rhythmic Flow", DisplayName: "Dance (Solo)", Type: domain.EventTypeLarge, Category: "Performing Arts", Day: 2, Solo: entry(50), Group: nil, ParticipationPoints: 150, WinnerPoints: largeWinners},
	{ID: "l10", ThemedName: "Roots to Bag", DisplayName: "Tote Bag Painting", Type: domain.EventTypeLarge, Category: "Fine Arts", Day: 2, Solo: entry(100), Group: nil, ParticipationPoints: 150, WinnerPoints: largeWinners},
	{ID: "l11", ThemedName: "Tatva vichar", DisplayName: "Creative Writing", Type: domain.EventTypeLarge, Category: "Fine Arts", Day: 2, Solo: entry(50), Group: nil, ParticipationPoints: 150, WinnerPoints: largeWinners},
	// Day 2, small
	{ID: "s7", ThemedName: "Bloom in Henna", DisplayName: "Mehandi", Type: domain.EventTypeSmall, Category: "Fine Arts", Day: 2, Solo: entry(50), Group: nil, ParticipationPoints: 50, WinnerPoints: smallWinners},
	{ID: "s8", ThemedName: "Stumble Guys", DisplayName: "Stumble Guys", Type: domain.EventTypeSmall, Category: "Online Games", Day: 2, Solo: entry(50), Group: nil, ParticipationPoints: 50, WinnerPoints: smallWinners},
	{ID: "s9", ThemedName: "Clash Royal", DisplayName: "Clash Royale", Type: domain.EventTypeSmall, Category: "Online Games", Day: 2, Solo: entry(50), Group: nil, ParticipationPoints: 50, WinnerPoints: smallWinners},
}
