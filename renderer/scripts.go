package renderer

// jsSeoSnapshot returns the signals polled during the SEO-ready wait.
const jsSeoSnapshot = `() => {
	const text = (el) => el ? (el.textContent || "").replace(/\s+/g, " ").trim() : "";
	const attr = (el, name) => el ? (el.getAttribute(name) || "").trim() : "";
	const canonical = document.querySelector('link[rel="canonical"]');
	return {
		title: (document.title || "").trim(),
		description: attr(document.querySelector('meta[name="description" i]'), "content"),
		h1: text(document.querySelector("h1")),
		canonical: canonical ? canonical.href : "",
		url: location.href,
	};
}`

// jsWaitStable resolves true once no DOM mutation happened for quiet ms, or
// false when timeout ms elapsed first.
const jsWaitStable = `(quiet, timeout) => new Promise((resolve) => {
	let quietTimer = null;
	let hardTimer = null;
	let observer = null;
	const done = (stable) => {
		if (observer) observer.disconnect();
		clearTimeout(quietTimer);
		clearTimeout(hardTimer);
		resolve(stable);
	};
	observer = new MutationObserver(() => {
		clearTimeout(quietTimer);
		quietTimer = setTimeout(() => done(true), quiet);
	});
	observer.observe(document.documentElement || document, {
		childList: true, subtree: true, attributes: true, characterData: true,
	});
	quietTimer = setTimeout(() => done(true), quiet);
	hardTimer = setTimeout(() => done(false), timeout);
})`

const jsLocation = `() => location.href`
