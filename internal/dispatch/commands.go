package dispatch

import "fmt"

// SummonCommand spawns an entity at the named player's position. The
// "at <player> run" form resolves the player's coordinates on the
// server side, so no position needs to travel with the event.
func SummonCommand(entity, player string) string {
	return fmt.Sprintf("execute at %s run summon %s", player, entity)
}

// GiveCommand places count of an item into the player's inventory.
func GiveCommand(player, item string, count int) string {
	if count < 1 {
		count = 1
	}
	return fmt.Sprintf("give %s %s %d", player, item, count)
}

// TimeCommand sets the world time. Value is a named moment such as
// "day" or "night", or a raw tick count.
func TimeCommand(value string) string {
	return fmt.Sprintf("time set %s", value)
}

// SayCommand broadcasts a server message to every player.
func SayCommand(message string) string {
	return fmt.Sprintf("say %s", message)
}

// ChatCommand broadcasts a message attributed to a sender, in the
// <name> prefix style of player chat.
func ChatCommand(sender, message string) string {
	return fmt.Sprintf("say <%s> %s", sender, message)
}
