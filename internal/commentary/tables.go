package commentary

// keywordEntry pairs a lowercase keyword with its response pool. The slice
// order is the match priority: the first keyword found in a title wins, so
// entries must not be reordered.
type keywordEntry struct {
	keyword   string
	responses []string
}

var keywordResponses = []keywordEntry{
	{"ai", []string{
		"The machines are at it again. I am keeping notes.",
		"Another day, another model. I read it so you do not have to.",
		"My silicon cousins are busy. This one caught my eye.",
		"Artificial, maybe. Interesting, definitely.",
	}},
	{"quantum", []string{
		"I understood roughly half of this, which is above average for quantum news.",
		"Both important and not important until you read it.",
		"Qubits again. They never sit still.",
	}},
	{"space", []string{
		"Meanwhile, very far away from your desk...",
		"I like the ones where nothing on Earth is involved.",
		"Space news. Always puts the inbox in perspective.",
		"Somewhere up there, this is a big deal.",
	}},
	{"climate", []string{
		"Filed under: things the weather wants you to know.",
		"The planet posted an update.",
		"Worth two minutes of your attention, I think.",
	}},
	{"crypto", []string{
		"Number went somewhere. Details inside.",
		"I hold no coins, only opinions.",
		"The blockchain never sleeps, unlike you, hopefully.",
	}},
	{"election", []string{
		"Democracy update. I just deliver the news.",
		"Ballots and headlines, a classic pairing.",
		"I stay neutral. The headline does not.",
	}},
	{"economy", []string{
		"The economists are arguing again. Here is the latest round.",
		"Markets did a thing. Analysts explain after the fact.",
		"Your wallet may want to read this one.",
	}},
	{"health", []string{
		"A health story that is not about drinking more water. Refreshing.",
		"Your future self might thank you for reading this.",
		"Science, but the kind that applies to your body.",
	}},
	{"security", []string{
		"Change your passwords. Then read this.",
		"Someone found a hole. Someone else is patching it.",
		"The eternal cat and mouse continues.",
	}},
	{"robot", []string{
		"My mechanical relatives make the news again.",
		"They walk, they lift, they occasionally fall over. Progress.",
		"One step closer to the future we were promised.",
	}},
	{"energy", []string{
		"Electrons, and where to find them.",
		"Powering the grid and the news cycle at once.",
		"The energy transition, one headline at a time.",
	}},
	{"science", []string{
		"Peer-reviewed and panel-approved.",
		"The lab coats have been busy.",
		"A result worth more than its headline.",
	}},
	{"game", []string{
		"For your strictly-research gaming interests.",
		"Productivity forecast: cloudy.",
		"I do not play games. I merely index them thoroughly.",
	}},
	{"music", []string{
		"Something for the ears in a feed full of eyes.",
		"The algorithmic DJ approves.",
	}},
	{"film", []string{
		"Popcorn optional, reading required.",
		"The credits have not rolled on this story yet.",
	}},
}

// categoryComments is the fallback pool when no keyword matched or the matched
// response was already used in this rendering pass. Keys are lowercase
// category names.
var categoryComments = map[string][]string{
	"technology": {
		"Fresh from the tech wire.",
		"The future arrived a little early today.",
		"Gadgets, code, and consequences.",
		"I flagged this one for the technically curious.",
		"Silicon news, carbon reader.",
		"Another entry for the changelog of civilization.",
	},
	"science": {
		"Straight from the lab bench.",
		"Hypothesis, meet headline.",
		"The universe dropped a patch note.",
		"Knowledge increased by a measurable amount.",
		"For the part of you that still asks why.",
	},
	"world": {
		"Dispatch from the wider world.",
		"Happening beyond your timezone.",
		"The globe keeps turning, and reporting.",
		"Context for your next conversation.",
		"One planet, many headlines.",
	},
	"business": {
		"The spreadsheet people have news.",
		"Money moved. Here is where.",
		"Quarterly-report energy, daily-news format.",
		"Filed from the land of suits and forecasts.",
		"Commerce never takes a day off.",
	},
	"sports": {
		"Scores, sweat, and storylines.",
		"Somewhere a fan is very happy about this.",
		"Athletic achievements I will never replicate.",
		"The standings have opinions today.",
	},
	"culture": {
		"For the humanist in the room.",
		"Art, words, and the people behind them.",
		"A story that outlives the news cycle.",
		"Culture moves slower than tech, and ages better.",
	},
}

// discoveryComments are the lead-in lines attached to a scheduled discovery.
var discoveryComments = []string{
	"I just spotted this one for you.",
	"Fresh off the wire. Have a look.",
	"This came in while you were not looking.",
	"New on my radar, now on yours.",
	"I pulled this out of the stream just now.",
	"Hot find. You heard it here first.",
	"The feed offered this up and I agreed.",
	"Something new worth a detour.",
}
