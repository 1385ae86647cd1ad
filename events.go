package hostanim

// AnimationFeature events, emitted as FeatureEvent(AnimationFeatureName, event)
const (
	EventAddLayer          = "onAddLayerEvent"
	EventRemoveLayer       = "onRemoveLayerEvent"
	EventRenameLayer       = "onRenameLayerEvent"
	EventAddAnimation      = "onAddAnimationEvent"
	EventRemoveAnimation   = "onRemovedAnimationEvent"
	EventRenameAnimation   = "onRenameAnimationEvent"
	EventPlay              = "onPlayEvent"
	EventPlayNextAnimation = "onPlayNextAnimationEvent"
	EventPause             = "onPauseEvent"
	EventResume            = "onResumeEvent"
	EventInterrupt         = "onInterruptEvent"
	EventStop              = "onStopEvent"
)

// AnimationEvent is the payload of every AnimationFeature event. Fields that
// do not apply to an event are left empty.
type AnimationEvent struct {
	Layer     string `json:"layer" yaml:"layer"`
	Animation string `json:"animation,omitempty" yaml:"animation,omitempty"`
	OldName   string `json:"oldName,omitempty" yaml:"oldName,omitempty"`
	// Next is the sub-animation a random state switched to
	Next  string `json:"next,omitempty" yaml:"next,omitempty"`
	Index int    `json:"index" yaml:"index"`
}
