// Package guide serves the static emergency-care guidance for caregivers.
// The content is fixed text, not computed; the bot renders it as-is.
package guide

// Section is one guide chapter.
type Section struct {
	ID    string
	Title string
	Body  string
}

// Sections returns all guide chapters in display order.
func Sections() []Section {
	return sections
}

// Get returns a chapter by id.
func Get(id string) (*Section, bool) {
	for i := range sections {
		if sections[i].ID == id {
			return &sections[i], true
		}
	}
	return nil, false
}

var sections = []Section{
	{
		ID:    "pump-failure",
		Title: "⚠️ Insulin pump failure",
		Body: `*Insulin pump failure*

*IMPORTANT:* a pump failure needs immediate action. Without continuous basal insulin, a child with type 1 diabetes can develop ketoacidosis within 4–6 hours.

*Step 1 — identify the failure:*
• Occlusion/no-delivery alarm: check the infusion set, tubing and reservoir
• Mechanical error: the pump stops delivering or shows a critical error
• Empty reservoir: insulin has run out
• Physical damage: the pump was dropped or soaked

*Step 2 — switch to pens:*
• Give long-acting (basal) insulin at the pump's total daily basal dose
• Keep the same ICR for meal doses, giving rapid-acting insulin by pen before meals
• Add correction doses by ISF when glucose runs high

*Step 3 — monitor:*
• Check glucose every 2 hours
• Check ketones if glucose stays above 250 mg/dL
• Contact your diabetes team for pump replacement`,
	},
	{
		ID:    "high-pump",
		Title: "📈 High glucose on a pump",
		Body: `*Hyperglycemia while on a pump*

*If glucose is above 250 mg/dL:*
1. Give a correction bolus through the pump: (current glucose − target) / ISF
2. Re-check after 1 hour
3. If glucose did not fall, the infusion set may be blocked — give the correction by pen and replace the set
4. Check ketones; with moderate or large ketones, follow your sick-day plan and call your diabetes team
5. Give plenty of water

Never give two pump corrections in a row without checking the set first: an unnoticed occlusion is the most common cause of stubborn highs.`,
	},
	{
		ID:    "low-pump",
		Title: "📉 Low glucose on a pump",
		Body: `*Hypoglycemia while on a pump*

*If glucose is below 70 mg/dL:*
1. Give 10–15 g of fast carbohydrate (juice, glucose tablets)
2. Suspend or reduce the basal rate temporarily if the pump supports it
3. Re-check after 15 minutes; repeat the fast carbs if still low
4. Once recovered, consider a small snack if the next meal is far away

*If the child is unconscious or cannot swallow:*
• Do NOT give anything by mouth
• Give glucagon and call emergency services
• Suspend the pump`,
	},
	{
		ID:    "high-pens",
		Title: "📈 High glucose on pens",
		Body: `*Hyperglycemia on pen therapy*

*Correction formula:* correction dose = (current glucose − target glucose) / ISF

*Example:* glucose = 220 mg/dL, target = 100 mg/dL, ISF = 50
Correction = (220 − 100) / 50 = 2.4 units

*Rules:*
• Wait at least 3 hours between corrections so doses do not stack
• Check ketones when glucose stays above 250 mg/dL
• Encourage water
• If two consecutive corrections change nothing, check the insulin (expiry, storage) and the injection sites`,
	},
	{
		ID:    "low-pens",
		Title: "📉 Low glucose on pens",
		Body: `*Hypoglycemia on pen therapy*

*If glucose is below 70 mg/dL:*
1. Give 10–15 g of fast carbohydrate
2. Re-check after 15 minutes, repeat if needed (rule of 15)
3. Follow with a slower snack once recovered

*Prevention:*
• Review the ICR if lows keep following meals
• Review the basal dose if lows happen overnight or before meals
• Always carry fast sugar

*Severe low (unconscious):* glucagon + emergency services, nothing by mouth.`,
	},
	{
		ID:    "illness",
		Title: "🤒 Sick days",
		Body: `*Managing diabetes during illness*

Illness usually raises insulin needs even when the child eats less.

*Rules:*
• Never stop basal insulin
• Check glucose every 2–3 hours, ketones at least twice a day
• Keep fluids going: small sips often
• Give correction doses by ISF when glucose runs high
• If the child cannot keep food down, use sugar-containing fluids and adjust meal doses

*Call your diabetes team when:*
• Vomiting persists beyond a few hours
• Ketones are moderate or large
• Glucose stays above 300 mg/dL despite corrections`,
	},
}
