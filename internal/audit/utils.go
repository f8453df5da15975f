package audit

import "fmt"

func Interpret(log LogEntry) string {
	switch log.Verb {
	case Submit:
		return fmt.Sprintf("Submitted order (ID: %s)", log.ResourceId)
	case Approve:
		return fmt.Sprintf("Approved order (ID: %s)", log.ResourceId)
	case Reject:
		return fmt.Sprintf("Rejected order (ID: %s)", log.ResourceId)
	case Modify:
		return fmt.Sprintf("Modified and approved order (ID: %s)", log.ResourceId)
	case Activate:
		switch log.ResourceType {
		case AdminGroupResource:
			return fmt.Sprintf("Activated admin group (ID: %s)", log.ResourceId)
		case AdminPanelResource:
			return "Unlocked the personal admin panel"
		}
	case Deactivate:
		if log.ResourceType == AdminGroupResource {
			return fmt.Sprintf("Deactivated admin group (ID: %s)", log.ResourceId)
		}
	}
	return fmt.Sprintf(
		"Entity[%s[%s]] performed action[%s] on Resource[%s[%s]]",
		log.EntityType,
		log.EntityId,
		log.Verb,
		log.ResourceType,
		log.ResourceId,
	)
}
