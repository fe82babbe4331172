package planner

import (
	"encoding/json"
	"fmt"
)

const promptTemplate = `
You are an AI academic advisor tasked with creating an optimal study plan for a student.

Here is the student's situation:

1. Unassigned Modules: %s
2. Frozen Modules (already assigned and cannot be moved): %s
3. Semester Information: %s

Requirements for a good study plan:
- Each module must be assigned to a semester when it is offered (see module.offering)
- The sum of module hardness in each semester should not exceed the hardness limit for that semester
- Distribute workload as evenly as possible across semesters
- More credits in earlier semesters is generally better
- Ensure prerequisite modules (if any) are taken before their dependent modules

Please generate a main optimal plan and 2-3 alternative plans.
Give each plan a descriptive name and a score from 0-100 indicating how good the plan is.

Your response must be in the following JSON format:
{
  "plans": [
    {
      "name": "Plan Name",
      "description": "Short description of the plan strategy",
      "assignments": [
        { "moduleId": "id1", "semesterId": 1 },
        { "moduleId": "id2", "semesterId": 2 }
      ],
      "score": 95
    },
    ...more alternative plans...
  ]
}
`

// BuildPrompt 拼接发给生成器的用户提示词
func BuildPrompt(in GenerationInput) (string, error) {
	unassigned, err := json.Marshal(in.UnassignedModules)
	if err != nil {
		return "", err
	}
	frozen, err := json.Marshal(in.FrozenModules)
	if err != nil {
		return "", err
	}
	semesters, err := json.Marshal(in.Semesters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(promptTemplate, unassigned, frozen, semesters), nil
}
