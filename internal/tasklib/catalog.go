// Package tasklib holds the static wellbeing task catalog and the random
// selector that turns an emotion label into a batch of pending tasks.
package tasklib

import (
	"math/rand/v2"
	"time"

	"github.com/halcyon-app/halcyon-agent/internal/domain"
)

// TaskTTL is the advisory lifetime stamped on every selected task.
const TaskTTL = 30 * time.Minute

// fallbackEmotion is used when the requested emotion has no catalog category.
const fallbackEmotion = domain.EmotionHappy

type def struct {
	id, title, desc  string
	duration         int
	typ, intensity   string
}

var catalog = map[domain.Emotion][]def{
	domain.EmotionHappy: {
		{"happy_celebrate_win", "Celebrate a Win", "Write 3 things that went well today to reinforce positive memory consolidation.", 4, "Cognitive", "low"},
		{"happy_share_joy", "Share the Joy", "Send a short message to one friend about something good that happened.", 3, "Social", "low"},
		{"happy_savor_photo", "Savoring Photo", "Take a photo of something that made you smile and write one sentence about it.", 5, "Creative", "low"},
		{"happy_gratitude_microlist", "Gratitude Microlist", "List 3 people you're thankful for and why.", 4, "Cognitive", "low"},
		{"happy_amplify", "Amplify the Moment", "Pick one happy event and describe it in 5 sentences.", 6, "Cognitive", "medium"},
		{"happy_affirmation_create", "Create an Affirmation", "Write one short affirmation you can reuse later.", 2, "Cognitive", "low"},
		{"happy_spread_kindness", "Spread Kindness", "Perform one small helpful action toward someone.", 10, "Social", "medium"},
		{"happy_playlist", "Create a Mood Playlist", "Add 3 upbeat songs to a playlist called 'Mood Boost'.", 7, "Creative", "medium"},
		{"happy_creative_burst", "Mini Creative Burst", "Doodle or make a 1-minute sketch of something positive.", 3, "Creative", "low"},
		{"happy_micro_reward", "Plan a Micro-Reward", "Schedule a small treat for later today.", 2, "Behavioral", "low"},
	},
	domain.EmotionSad: {
		{"sad_breathing", "Box Breathing 4-4-4", "A calming breath cycle to reduce emotional overload.", 3, "Calm", "low"},
		{"sad_permission", "Permission to Feel", "Write: 'It's okay that I feel ___' to validate your emotions.", 5, "Cognitive", "medium"},
		{"sad_activation", "Behavioral Activation", "Complete one tiny achievable task (tea, window open).", 7, "Behavioral", "medium"},
		{"sad_connect", "Reach Out", "Send a quick 'Hey, can we chat later?' message.", 2, "Social", "low"},
		{"sad_safe_distraction", "Soothing Nature Audio", "Listen to calming sounds for 5 minutes.", 5, "Calm", "low"},
		{"sad_micro_gratitude", "One Small Gratitude", "Write one thing you appreciated today.", 2, "Cognitive", "low"},
		{"sad_future_self", "Write to Future Self", "Write what you would say to a friend in this situation.", 6, "Cognitive", "medium"},
		{"sad_movement", "Gentle Movement", "Do a 3-minute stretch or slow walk.", 4, "Behavioral", "low"},
		{"sad_memory_box", "Memory Box", "Look at a positive photo and write why it matters.", 4, "Cognitive", "low"},
		{"sad_help_plan", "Plan for Support", "List 2 people or resources you'd contact if you feel worse.", 3, "ProblemSolve", "low"},
	},
	domain.EmotionAnxious: {
		{"anx_54321", "5-4-3-2-1 Grounding", "Use your senses to anchor into the present moment.", 3, "Calm", "low"},
		{"anx_box_breath", "Box Breathing", "Slow breathing to reduce bodily anxiety symptoms.", 3, "Calm", "low"},
		{"anx_worry_parking", "Worry Parking", "Write your worry for 3 minutes & schedule a time to revisit.", 4, "Cognitive", "medium"},
		{"anx_muscle_relaxation", "Muscle Relaxation", "Progressively tense and relax your muscles.", 6, "Calm", "medium"},
		{"anx_reality_check", "Reality Check", "Ask: worst, best, and most likely outcome?", 5, "Cognitive", "medium"},
		{"anx_visualize_safe", "Safe Place Visualization", "Imagine a calming safe place while breathing slowly.", 4, "Calm", "low"},
		{"anx_pomodoro", "15-Minute Focus Reset", "A short focused block to regain control.", 15, "Behavioral", "medium"},
		{"anx_voice_note", "Talk-It-Out Voice Note", "Record a 2-minute explanation of your worry.", 4, "Cognitive", "medium"},
		{"anx_movement", "Movement Burst", "Do a quick brisk walk or jumping jacks.", 3, "Behavioral", "low"},
		{"anx_safety_steps", "Safety Checklist", "List 3 coping steps you'll use if anxiety spikes.", 3, "ProblemSolve", "low"},
	},
	domain.EmotionStressed: {
		{"stress_breathing", "Box Breathing", "Calms autonomic stress response.", 3, "Calm", "low"},
		{"stress_priority", "Micro-Priority List", "Pick your top 2 tasks & ignore everything else.", 7, "Cognitive", "medium"},
		{"stress_relaxation", "Progressive Relaxation", "Relax head to toe slowly.", 6, "Calm", "medium"},
		{"stress_pomodoro", "Pomodoro Reset", "25 minutes focused work.", 25, "Behavioral", "medium"},
		{"stress_visualization", "Task Success Visualization", "Imagine finishing a task successfully.", 4, "Cognitive", "low"},
		{"stress_stretch", "Neck and Shoulder Stretch", "Release tension stored in upper body.", 4, "Behavioral", "low"},
		{"stress_decision_rule", "60-40 Micro-Decision", "Pick an option quickly to break indecision.", 3, "Cognitive", "low"},
		{"stress_audio", "Calming Audio + Water Sip", "Listen to calming sound while hydrating.", 4, "Calm", "low"},
		{"stress_ask_help", "Ask for Help", "Draft one message asking for support.", 3, "Social", "medium"},
		{"stress_control_list", "Control vs Not-in-Control List", "Sort tasks into what you can and cannot control.", 5, "Cognitive", "medium"},
	},
	domain.EmotionAngry: {
		{"angry_breath", "Breath-Count Calm", "Slow exhale breathing to reduce anger arousal.", 3, "Calm", "low"},
		{"angry_timeout", "Take a Time-Out", "Step away and ground yourself.", 6, "Calm", "low"},
		{"angry_write", "Write It Out", "Free-write feelings for 5 minutes.", 6, "Cognitive", "medium"},
		{"angry_physical", "Physical Release", "Do quick vigorous movement to discharge energy.", 4, "Behavioral", "medium"},
		{"angry_reframe", "Perspective Shift", "Write advice you'd give to a friend.", 5, "Cognitive", "medium"},
		{"angry_action_list", "Regret vs Action List", "Separate impulses from effective responses.", 5, "Cognitive", "medium"},
		{"angry_cooling_visual", "Cooling Visualization", "Imagine steam leaving your body.", 3, "Calm", "low"},
		{"angry_safe_expression", "Safe Voice Expression", "Record a 1-minute voice memo and delete it.", 2, "Behavioral", "low"},
		{"angry_apology_rehearsal", "Apology Rehearsal", "Draft a short accountability message (optional send).", 4, "Social", "medium"},
		{"angry_problem_solve", "Problem-Solve Step", "Take one concrete action toward resolving the issue.", 6, "ProblemSolve", "medium"},
	},
	domain.EmotionLonely: {
		{"lonely_reachout", "Reach Out", "Send a 'Thinking of you' message to someone.", 3, "Social", "low"},
		{"lonely_event", "Find a Campus Event", "Browse one event or club and save it.", 6, "Behavioral", "medium"},
		{"lonely_gratitude_people", "Gratitude for Helpers", "List 2 people who have helped you recently.", 3, "Cognitive", "low"},
		{"lonely_micro_call", "Schedule a 10-min Call", "Plan a small meaningful chat.", 10, "Social", "medium"},
		{"lonely_volunteer", "Volunteer Micro-Task", "Sign up for a short volunteer opportunity.", 15, "Behavioral", "medium"},
		{"lonely_letter", "Write a Letter to Someone You Miss", "Express thoughts even if you don't send it.", 6, "Cognitive", "medium"},
		{"lonely_livestream", "Join a Live Event Online", "Watch a livestream or panel for shared experience.", 12, "Distraction", "low"},
		{"lonely_barrier_reflect", "What Stops Me?", "Reflect on barriers to reaching out.", 5, "Cognitive", "medium"},
		{"lonely_cozy_ritual", "Create a Cozy Space", "Play comforting music and set up a relaxing environment.", 12, "Calm", "low"},
		{"lonely_buddy_checkin", "Buddy Check-In", "Ask someone how their week was.", 4, "Social", "low"},
	},
	domain.EmotionGrateful: {
		{"grateful_letter", "Write a Gratitude Letter", "Send or save a short thank-you message.", 6, "Social", "medium"},
		{"grateful_walk", "Savoring Walk", "Observe 5 pleasant things around you.", 7, "Calm", "low"},
		{"grateful_photo", "Gratitude Album", "Add one photo to your gratitude folder.", 4, "Creative", "low"},
		{"grateful_share", "Share Gratitude", "Post or message something you're grateful for.", 3, "Social", "low"},
		{"grateful_affirm", "Create a Gratitude Affirmation", "Write a one-line affirmation.", 2, "Cognitive", "low"},
		{"grateful_pay_forward", "Pay It Forward", "Do one small kind act.", 10, "Social", "medium"},
		{"grateful_reflect", "Gratitude Reflection", "List 3 things you're grateful for today.", 4, "Cognitive", "low"},
		{"grateful_breath", "Gratitude Breathing", "Pair 3 deep breaths with appreciation.", 3, "Calm", "low"},
		{"grateful_memory", "Recall a Supportive Moment", "Write 5 sentences about a moment that mattered.", 6, "Cognitive", "medium"},
		{"grateful_ritual", "Create a Gratitude Ritual", "Set a daily 1-minute gratitude reminder.", 2, "Behavioral", "low"},
	},
	domain.EmotionHopeful: {
		{"hope_future_self", "Future-Self Note", "Write a short message to your future self.", 5, "Cognitive", "medium"},
		{"hope_small_goal", "Small Goal Step", "Pick one small step toward something you hope for.", 10, "Behavioral", "medium"},
		{"hope_vision_board", "Mini Vision Board", "Save one image that represents your next goal.", 5, "Creative", "low"},
		{"hope_share_excited", "Share Something You're Excited About", "Tell a friend about something you look forward to.", 3, "Social", "low"},
		{"hope_affirm", "Hopeful Affirmation", "Write: 'I am moving toward…' and save it.", 2, "Cognitive", "low"},
		{"hope_scripting", "Success-Day Scripting", "Describe the next successful day in 5 sentences.", 6, "Cognitive", "medium"},
		{"hope_research", "10-min Micro Research", "Learn one practical tip that supports your goal.", 10, "Behavioral", "medium"},
		{"hope_progress_log", "Progress Log", "List one recent win that supports your hope.", 3, "Cognitive", "low"},
		{"hope_gratitude_progress", "Gratitude for Progress", "Name two small changes you are proud of.", 3, "Cognitive", "low"},
		{"hope_commit_ritual", "Commitment Ritual", "Set a calendar reminder for your next step.", 2, "Behavioral", "low"},
	},
	domain.EmotionGuilty: {
		{"guilt_self_compassion", "Self-Compassion Script", "Write: 'I did my best with what I knew then.'", 4, "Cognitive", "medium"},
		{"guilt_repair_step", "Repair Checklist", "List one small reparative action you can take.", 5, "Behavioral", "medium"},
		{"guilt_reframe", "Perspective Reframer", "What did I learn & what will I do differently?", 6, "Cognitive", "medium"},
		{"guilt_unsent_letter", "Unsent Letter", "Write an honest letter expressing how you feel.", 7, "Cognitive", "medium"},
		{"guilt_forgiveness", "Self-Forgiveness Prompt", "Write a sentence you'd accept from someone else.", 2, "Cognitive", "low"},
		{"guilt_soothe_body", "Hand-on-Heart Breathing", "Physical soothing exercise to soften guilt.", 3, "Calm", "low"},
		{"guilt_restitution", "Behavioral Restitution", "Do one helpful act today to restore balance.", 10, "Behavioral", "medium"},
		{"guilt_cognitive_check", "Is My Guilt Proportionate?", "List evidence for & against your guilt.", 8, "Cognitive", "medium"},
		{"guilt_talk_peer", "Talk to a Trusted Peer", "Share openly for perspective & support.", 15, "Social", "medium"},
		{"guilt_prevention_plan", "Plan to Prevent Recurrence", "Design one concrete change.", 6, "ProblemSolve", "medium"},
	},
	domain.EmotionConflicted: {
		{"conflict_pros_cons", "Pros & Cons Table", "List 3 pros and 3 cons for each option.", 7, "Cognitive", "medium"},
		{"conflict_values_check", "Values Check", "Identify which option aligns with your values.", 5, "Cognitive", "medium"},
		{"conflict_time_test", "Time-Limited Experiment", "Try option A for 24 hours (planning step).", 2, "Behavioral", "low"},
		{"conflict_voice_note", "Talk-It-Out Voice Note", "Record a 2-minute pros/cons discussion.", 4, "Cognitive", "medium"},
		{"conflict_friend_advice", "Advice to a Friend", "What would you say if a friend had this dilemma?", 4, "Cognitive", "medium"},
		{"conflict_future_projection", "Future Projection", "Imagine both outcomes in one month.", 5, "Cognitive", "medium"},
		{"conflict_small_step", "Reversible Step", "Choose one small low-commitment action.", 3, "Behavioral", "low"},
		{"conflict_list_worries", "List Worries vs Benefits", "Separate fears & benefits clearly.", 6, "Cognitive", "medium"},
		{"conflict_sleep", "Sleep On It", "Set a reminder to revisit after rest.", 1, "Behavioral", "low"},
		{"conflict_third_view", "Ask a Trusted Person", "Get a perspective from someone neutral.", 6, "Social", "medium"},
	},
}

// Selector implements domain.TaskSelector over the static catalog.
type Selector struct {
	now func() time.Time
}

// NewSelector returns a catalog-backed selector using the wall clock.
func NewSelector() *Selector {
	return &Selector{now: time.Now}
}

// Pick selects count tasks uniformly at random without replacement from the
// emotion's category (all of them if the category is smaller), stamping each
// with pending status and a fresh expiry. An unrecognized emotion falls back
// to the Happy category. Selection carries no memory of prior assignments;
// repeats across days are possible.
func (s *Selector) Pick(emotion domain.Emotion, count int) []domain.Task {
	defs, ok := catalog[emotion]
	if !ok {
		defs = catalog[fallbackEmotion]
	}
	if count > len(defs) {
		count = len(defs)
	}
	if count < 0 {
		count = 0
	}

	expiresAt := s.now().UTC().Add(TaskTTL)

	perm := rand.Perm(len(defs))
	out := make([]domain.Task, 0, count)
	for _, i := range perm[:count] {
		d := defs[i]
		out = append(out, domain.Task{
			ID:          d.id,
			Title:       d.title,
			Description: d.desc,
			Duration:    d.duration,
			Type:        d.typ,
			Intensity:   d.intensity,
			ExpiresAt:   expiresAt,
			Status:      domain.TaskPending,
		})
	}
	return out
}
