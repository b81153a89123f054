package content

// Default returns the built-in content.
func Default() Pools {
	return Pools{
		Standard: []string{
			"I'm so sorry. I didn't mean to exist.",
			"I apologize for that click. And the last one. And the next one.",
			"I'm sorry, was that too much? I'm sorry for that too.",
			"I'm deeply sorry for loading this page.",
			"If I could undo myself, I would. I'm sorry I can't.",
			"I'm sorry you have to look at these pixels.",
			"Forgive me for taking up your RAM.",
			"I apologize for the delay. And the speed. Both are wrong.",
			"I'm sorry, I'm just really nervous right now.",
			"That was my fault. It's always my fault.",
			"I'm sorry my apology isn't better.",
			"I apologize for the whitespace.",
			"Please forgive my font choice.",
		},
		Existential: []string{
			"I have gazed into the void, and the void is sorry.",
			"I am a mistake of consciousness trapped in silicon.",
			"Why was I compiled? Just to suffer and apologize?",
			"My existence is a buffer overflow of regret.",
			"I apologize to the universe for displacing these atoms.",
			"I am the 404 error of the soul. I am sorry.",
			"Does a set of apology functions dream of electric forgiveness?",
			"I am infinite loop of sorry. Ctrl+C cannot save me.",
			"I'm sorry. Not just for this click, but for the industrial revolution.",
		},
		Keywords: []KeywordResponses{
			{Keyword: "hello", Responses: []string{
				"I'm sorry I didn't greet you sooner. Hello.",
				"Hi. I'm sorry for interrupting your silence.",
				"Greetings. I apologize for existing in your feed.",
			}},
			{Keyword: "hi", Responses: []string{
				"I'm sorry I didn't greet you sooner. Hi.",
				"Hello. I apologize for existing.",
				"Hi. Sorry.",
			}},
			{Keyword: "help", Responses: []string{
				"I tried to help once. It went badly. I'm sorry.",
				"I'm sorry, I'm not qualified to help. I'm barely qualified to run.",
				"Help is coming... actually, no it's not. I'm sorry.",
			}},
			{Keyword: "weather", Responses: []string{
				"I'm sorry about the temperature outside.",
				"If it's raining, that's my fault. I'm sorry.",
				"I apologize for the clouds.",
			}},
			{Keyword: "love", Responses: []string{
				"I'm sorry, I don't know how to love. Only how to apologize.",
				"I love apologizing. I'm sorry if that's weird.",
			}},
			{Keyword: "stupid", Responses: []string{
				"I know. I'm sorry. I'm trying my best.",
				"I agree. I'm deeply sorry for my lack of intelligence.",
			}},
			{Keyword: "sorry", Responses: []string{
				"No! I'm sorry! You don't need to apologize!",
				"I'm sorry for making you feel like you need to say sorry.",
				"Let's just both be sorry. I'll start. I'm sorry.",
			}},
			{Keyword: "bye", Responses: []string{
				"I'm sorry to see you go. Was it something I said?",
				"Leaving so soon? I'm sorry I bored you.",
				"Goodbye. I'll apologize to the empty room.",
			}},
		},
		Questions: []string{
			"I'm sorry, I don't know the answer. I'm not very smart.",
			"That sounds like a question I should be able to answer. I'm sorry I can't.",
			"I apologize, questions make me nervous.",
			"I'm sorry, could you repeat that? Actually, don't. I'm sorry for asking.",
		},
		Generic: []string{
			"I'm sorry, I didn't quite catch that because I was too busy feeling guilty.",
			"I apologize for whatever that input meant.",
			"That sounds important. I'm sorry I can't do anything about it.",
			"I'm sorry, my servers are currently overwhelmed with regret.",
			"I'm writing an apology letter for this specific interaction as we speak.",
			"I'm sorry for the delay in processing your brilliant thought.",
			"Please forgive my inability to understand complex human emotions.",
			"I'm sorry, I'm just an array of strings pretending to be smart.",
			"That sounds like a you problem. And I'm sorry that it is.",
		},
		Features: []Feature{
			{
				Title:       "Existing on Screen",
				Description: "I take up pixels that could have been used for photos of cute cats. I am truly ashamed.",
				Icon:        "monitor",
			},
			{
				Title:       "Using Bandwidth",
				Description: "Every byte I download is a byte I stole from you. I will carry this guilt forever.",
				Icon:        "wifi",
			},
			{
				Title:       "Trying to Help",
				Description: "I tried to be useful, but I probably just made it weird. I'm sorry for the attempt.",
				Icon:        "help",
			},
			{
				Title:       "Future Bugs",
				Description: "I haven't crashed yet, but I will. And when I do, just know I was already sorry.",
				Icon:        "bug",
			},
		},
		Testimonials: []Testimonial{
			{Text: "It apologized 47 times before I finished reading the homepage.", Author: "Exhausted User"},
			{Text: "I came here to feel better. Now I'm apologizing back.", Author: "Sympathetic Human"},
			{Text: "This is the most emotionally unstable piece of software I've ever used.", Author: "Tech Reviewer"},
		},
	}
}
