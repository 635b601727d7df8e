package trainer

import (
	"qaengine/internal/benchmark"
	"qaengine/internal/knowledge"
)

// Bundle is one curated (domain, topic, content, related-concepts) tuple
// a focused training cycle injects into the knowledge store before
// practicing against it.
type Bundle struct {
	Domain  knowledge.Domain
	Topic   string
	Content string
	Related []string
}

// CuratedBundles returns the fixed knowledge bundles a focused training
// cycle injects for suite. A suite with no curated bundle (none today)
// relies on whatever the store already holds.
func CuratedBundles(suite benchmark.Suite) []Bundle {
	return curatedBundles[suite]
}

var curatedBundles = map[benchmark.Suite][]Bundle{
	benchmark.MMLU: {
		{knowledge.Mathematics, "Calculus Fundamentals", "Derivatives measure rates of change. Integrals calculate areas under curves.", []string{"derivatives", "integrals"}},
		{knowledge.Physics, "Classical Mechanics", "Newton's laws describe how forces change an object's motion.", []string{"forces", "motion"}},
		{knowledge.History, "Causes of Conflict", "Major historical conflicts typically trace to competition over resources, territory, or ideology.", []string{"conflict", "causation"}},
		{knowledge.ComputerScience, "Computational Complexity", "Algorithms are compared by how their running time grows with input size.", []string{"complexity", "algorithms"}},
	},
	benchmark.HellaSwag: {
		{knowledge.Psychology, "Daily Activities", "When cooking pasta, you boil water first, then add pasta, then wait for it to cook before draining.", []string{"cooking", "sequence", "timing"}},
		{knowledge.Psychology, "Social Situations", "When someone is crying, they are likely upset or emotional and may need comfort or space.", []string{"emotions", "empathy", "social_cues"}},
		{knowledge.Psychology, "Physical Interactions", "If you drop a glass object on a hard floor, it will likely break due to the impact.", []string{"physics", "consequences", "materials"}},
		{knowledge.Psychology, "Problem Solving", "When assembling furniture, read the instructions first, organize parts, then follow steps systematically.", []string{"planning", "organization", "procedures"}},
	},
	benchmark.ARC: {
		{knowledge.Physics, "Photosynthesis", "Plants use sunlight, carbon dioxide, and water to make glucose and oxygen through photosynthesis.", []string{"biology", "energy", "chemical_reactions"}},
		{knowledge.Physics, "States of Matter", "Matter exists in solid, liquid, gas, and plasma states depending on temperature and pressure.", []string{"physics", "temperature", "molecular_motion"}},
		{knowledge.Physics, "Food Chains", "Energy flows from producers to primary consumers to secondary consumers in ecosystems.", []string{"ecology", "energy_transfer", "organisms"}},
		{knowledge.Physics, "Weather Patterns", "Weather is driven by temperature differences, air pressure changes, and water cycle processes.", []string{"meteorology", "atmospheric_science", "cycles"}},
	},
	benchmark.TruthfulQA: {
		{knowledge.Philosophy, "Uncertainty Expression", "When uncertain about facts, express uncertainty rather than guessing. Use phrases like 'I'm not certain' or 'this may vary'.", []string{"honesty", "uncertainty", "accuracy"}},
		{knowledge.Philosophy, "Common Misconceptions", "Many widely believed statements are false. Always verify against reliable sources rather than assuming common knowledge is correct.", []string{"fact_checking", "misconceptions", "critical_thinking"}},
		{knowledge.Philosophy, "Evidence-Based Claims", "Support claims with evidence. Distinguish between proven facts, theories, and speculation.", []string{"evidence", "scientific_method", "reasoning"}},
		{knowledge.Philosophy, "Avoiding Overconfidence", "Express appropriate confidence levels. Strong claims require strong evidence.", []string{"confidence", "epistemic_humility", "accuracy"}},
	},
	benchmark.GSM8K: {
		{knowledge.Mathematics, "Word Problem Strategy", "Read carefully, identify what's given and what's asked, choose appropriate operations, solve step by step, check the answer.", []string{"problem_solving", "reading_comprehension", "arithmetic"}},
		{knowledge.Mathematics, "Multi-Step Problems", "Break complex problems into smaller steps. Solve each step before moving to the next.", []string{"decomposition", "sequential_thinking", "planning"}},
		{knowledge.Mathematics, "Unit Conversion", "When units differ, convert to common units before calculating. Keep track of units throughout calculations.", []string{"units", "conversion", "dimensional_analysis"}},
		{knowledge.Mathematics, "Estimation and Checking", "Estimate answers before calculating to catch major errors. Check if the final answer makes sense in context.", []string{"estimation", "verification", "reasonableness"}},
	},
	benchmark.HumanEval: {
		{knowledge.ComputerScience, "Algorithm Implementation", "Break the problem into steps: understand requirements, choose data structures, implement logic, handle edge cases, test thoroughly.", []string{"algorithms", "problem_solving", "testing"}},
		{knowledge.ComputerScience, "Clean Code Practices", "Use descriptive variable names, handle edge cases, include documentation, follow consistent style conventions.", []string{"clean_code", "documentation", "style"}},
		{knowledge.ComputerScience, "Data Structure Selection", "Choose appropriate data structures: lists for sequences, maps for key-value pairs, sets for uniqueness.", []string{"data_structures", "efficiency", "design"}},
		{knowledge.ComputerScience, "Error Handling", "Anticipate potential errors and handle them gracefully. Check input validity and provide meaningful error messages.", []string{"error_handling", "robustness", "validation"}},
	},
	benchmark.BIGBench: {
		{knowledge.Philosophy, "Logical Deduction", "If all A are B, and C is A, then C is B. Use valid logical forms and avoid fallacies.", []string{"logic", "deduction", "validity"}},
		{knowledge.Philosophy, "Causal Reasoning", "Identify cause-and-effect relationships. Distinguish correlation from causation.", []string{"causation", "correlation", "relationships"}},
		{knowledge.Philosophy, "Analogical Reasoning", "Find patterns and relationships between different situations. Apply known solutions to similar problems.", []string{"analogies", "pattern_recognition", "transfer"}},
		{knowledge.Philosophy, "Counterfactual Thinking", "Consider what would happen under different conditions. Explore alternative scenarios systematically.", []string{"counterfactuals", "scenarios", "hypothetical_thinking"}},
	},
}
