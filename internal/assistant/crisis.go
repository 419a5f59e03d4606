package assistant

// QueryTypeCrisis marks replies produced by the crisis path instead of the
// normal pipeline.
const QueryTypeCrisis = "crisis"

// crisisSource labels the fixed crisis reply in the sources list.
const crisisSource = "crisis_protocol"

// crisisResponse is returned verbatim when a message trips the immediate
// crisis screen. Nothing model-generated is mixed into it.
const crisisResponse = `I'm really concerned about what you just shared. What you're feeling matters, and you deserve real support right now, from people who are trained for exactly this.

Please reach out to one of these right away:

Call or text 988 to reach the Suicide and Crisis Lifeline, any hour, any day.
Text HOME to 741741 to talk with a Crisis Text Line counselor.
Outside the US, findahelpline.com lists free helplines by country.
If you are in immediate danger, call 911 or go to the nearest emergency room.

You don't have to carry this alone, and reaching out is a strong step, not a weak one. I'm still here with you too.`

// moderateCrisisFooter is appended to the model reply when the softer
// crisis patterns matched.
const moderateCrisisFooter = "\n\nAnd if things ever start to feel like too much to carry, you can always call or text 988. Someone is there around the clock."
