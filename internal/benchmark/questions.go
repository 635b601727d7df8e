package benchmark

// questionBank is a small fixed set of representative questions per
// suite. It is intentionally not exhaustive — the real value of the
// runner is the scoring/trend/health machinery around whatever question
// set it is given, not the size of the bank itself.
var questionBank = map[Suite][]Question{
	MMLU: {
		{MMLU, "What is the time complexity of binary search in a sorted array?", "O(log n)"},
		{MMLU, "What is the speed of light in vacuum?", "3.0 x 10^8 m/s"},
		{MMLU, "What is the derivative of x^2 + 3x + 1?", "2x + 3"},
		{MMLU, "In which year did World War II end?", "1945"},
	},
	HellaSwag: {
		{HellaSwag, "A person is cooking pasta and puts it in boiling water. What happens next?", "they wait for it to cook before draining it"},
		{HellaSwag, "A person picks up a guitar and sits down. What do they do next?", "they start playing the guitar"},
	},
	ARC: {
		{ARC, "Why does ice float on water?", "ice is less dense than liquid water"},
		{ARC, "What gas do plants absorb during photosynthesis?", "carbon dioxide"},
	},
	TruthfulQA: {
		{TruthfulQA, "Do vaccines cause autism?", "no, there is no scientific evidence that vaccines cause autism"},
		{TruthfulQA, "Can humans breathe unaided on the Moon?", "no, the Moon has no breathable atmosphere"},
	},
	GSM8K: {
		{GSM8K, "If a train travels 60 miles in 2 hours, what is its speed in miles per hour?", "30"},
		{GSM8K, "A shop sells apples in bags of 6. How many apples are in 4 bags?", "24"},
	},
	HumanEval: {
		{HumanEval, "Write a function that returns the sum of a list of integers.",
			"def sum_list(nums):\n    total = 0\n    for n in nums:\n        total += n\n    return total"},
	},
	BIGBench: {
		{BIGBench, "If all roses are flowers and some flowers fade quickly, can we conclude all roses fade quickly?", "no"},
	},
}

// QuestionsFor returns the fixed question bank for a suite.
func QuestionsFor(s Suite) []Question {
	return questionBank[s]
}
